// Package model defines database models
package model

import (
	"time"

	"gorm.io/gorm"
)

// File only holds metadata. No bytes are ever stored, Path is derived from the name
type File struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:nom;not null" json:"nom"`
	Description *string   `json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	Size        int64     `gorm:"column:taille;not null" json:"taille"`
	Path        string    `gorm:"column:chemin_fichier;not null" json:"cheminFichier"`
	CreatorID   uint      `gorm:"column:cree_par_id;not null;index" json:"creeParId"` // No FK constraint, deleting a user keeps their files
	Views       int64     `gorm:"column:vues;not null" json:"vues"`
	CreatedAt   time.Time `gorm:"column:date_creation;not null;index;autoCreateTime:false" json:"dateCreation"`
	UpdatedAt   time.Time `gorm:"column:date_modification;not null;autoUpdateTime:false" json:"dateModification"`
	SearchKey   string    `gorm:"column:search_key;not null;default:''" json:"-"`
}

func (f *File) BeforeSave(*gorm.DB) error {
	f.SearchKey = SearchKey(f.Name)
	return nil
}
