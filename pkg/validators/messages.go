package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JSONTagName makes validator report fields by their JSON name so messages
// match what the client sent
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return fld.Name
	}

	return name
}

// Messages turns a binding error into human readable messages, one per field
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, fieldMessage(e))
		}

		return out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return []string{"request body is empty"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []string{"malformed JSON request body"}
	case errors.As(err, &typeErr):
		return []string{fmt.Sprintf("%s has an invalid type", typeErr.Field)}
	}

	return []string{err.Error()}
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return ErrEmailInvalid.Error()
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be positive", field)
	case "oneof":
		if field == "role" {
			return ErrRoleInvalid.Error()
		}
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	}

	return fmt.Sprintf("%s is invalid", field)
}
