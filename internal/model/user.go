package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}

	return false
}

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	LastName     string     `gorm:"column:nom;not null" json:"nom"`
	FirstNames   string     `gorm:"column:prenoms;not null" json:"prenoms"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"` // Never leaves the store
	Role         Role       `gorm:"size:16;not null;index" json:"role"`
	Active       bool       `gorm:"column:actif;not null" json:"actif"`
	CreatedAt    time.Time  `gorm:"column:date_creation;not null;index;autoCreateTime:false" json:"dateCreation"`
	LastLogin    *time.Time `gorm:"column:derniere_connexion" json:"derniereConnexion"`
	SearchKey    string     `gorm:"column:search_key;not null;default:''" json:"-"`
}

// BeforeSave keeps SearchKey in sync with the searchable fields
func (u *User) BeforeSave(*gorm.DB) error {
	u.SearchKey = SearchKey(u.LastName, u.FirstNames, u.Email)
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
