package internal

import (
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB // Only used for health checks, everything else goes through Store
	Store  *store.Store
	Tokens *security.TokenIssuer
}
