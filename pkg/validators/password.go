package validators

import (
	"errors"
	"fmt"
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 255
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordEmpty    = errors.New("no password provided")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < PasswordMinLength {
		return ErrPasswordTooShort
	}

	if len(p) > PasswordMaxLength {
		return ErrPasswordTooLong
	}

	return nil
}
