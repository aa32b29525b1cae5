package validators

import (
	"errors"
	"strings"
)

var (
	ErrFileNameEmpty   = errors.New("nom is required")
	ErrFileNameTooLong = errors.New("nom must be at most 255 characters long")
)

const maxFileNameSize = 255

func FileNameValidator(n string) error {
	if strings.TrimSpace(n) == "" {
		return ErrFileNameEmpty
	}

	if len(n) > maxFileNameSize {
		return ErrFileNameTooLong
	}

	return nil
}
