package validators

import (
	"bitwise74/user-api/internal/model"
	"errors"
)

var ErrRoleInvalid = errors.New("role must be either 'admin' or 'user'")

func RoleValidator(r model.Role) error {
	if !r.Valid() {
		return ErrRoleInvalid
	}

	return nil
}
