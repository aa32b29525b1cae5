package store

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/util"
	"bitwise74/user-api/pkg/validators"
	"context"
	"errors"
	"mime"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

type NewFile struct {
	Name        string
	Description *string
	Type        string
	Size        int64
	Path        string // Derived from Name when empty
	CreatorID   uint
}

type FileUpdate struct {
	Name        *string
	Description *string // An empty string clears the description
	Type        *string
	Size        *int64
	Path        *string
}

type FileFilter struct {
	Page   int
	Limit  int
	Search string // Name substring, case-insensitive
	Type   string // MIME type substring
}

func (s *Store) CreateFile(ctx context.Context, in NewFile) (*model.File, error) {
	var msgs []string
	msgs = appendFileErrs(msgs, &in.Name, &in.Type, &in.Size)
	if len(msgs) > 0 {
		return nil, &ValidationError{Errors: msgs}
	}

	if in.Path == "" {
		in.Path = util.UploadPath(in.Name)
	}

	now := s.timestamp()
	file := &model.File{
		Name:        in.Name,
		Description: emptyToNil(in.Description),
		Type:        normalizeType(in.Type),
		Size:        in.Size,
		Path:        in.Path,
		CreatorID:   in.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.User{}).Where("id = ?", in.CreatorID).Count(&n).Error; err != nil {
			return err
		}

		if n == 0 {
			return ErrCreatorNotFound
		}

		return tx.Create(file).Error
	})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// GetFile returns nil without an error when no file has this id
func (s *Store) GetFile(ctx context.Context, id uint) (*model.File, error) {
	var file model.File

	err := s.db.WithContext(ctx).First(&file, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &file, nil
}

// RecordFileView bumps the view counter without touching the modification date
func (s *Store) RecordFileView(ctx context.Context, id uint) error {
	r := s.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		UpdateColumn("vues", gorm.Expr("vues + ?", 1))
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateFile merges the set fields and always moves the modification date forward,
// even when nothing actually changed
func (s *Store) UpdateFile(ctx context.Context, id uint, in FileUpdate) (*model.File, error) {
	var msgs []string
	msgs = appendFileErrs(msgs, in.Name, in.Type, in.Size)
	if len(msgs) > 0 {
		return nil, &ValidationError{Errors: msgs}
	}

	var file model.File

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&file, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}

			return err
		}

		if in.Name != nil {
			file.Name = *in.Name
		}
		if in.Description != nil {
			file.Description = emptyToNil(in.Description)
		}
		if in.Type != nil {
			file.Type = normalizeType(*in.Type)
		}
		if in.Size != nil {
			file.Size = *in.Size
		}
		if in.Path != nil && *in.Path != "" {
			file.Path = *in.Path
		}

		now := s.timestamp()
		if !now.After(file.UpdatedAt) {
			now = file.UpdatedAt.Add(time.Microsecond)
		}
		file.UpdatedAt = now

		return tx.Save(&file).Error
	})
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (s *Store) DeleteFile(ctx context.Context, id uint) (bool, error) {
	r := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.File{})
	if r.Error != nil {
		return false, r.Error
	}

	return r.RowsAffected > 0, nil
}

// ListFiles returns one page of files, most recently modified first, and the
// number of files matching the filter before pagination
func (s *Store) ListFiles(ctx context.Context, f FileFilter) ([]model.File, int64, error) {
	var (
		files []model.File
		total int64
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.File{}).
			Scopes(fileFilter(f)).
			Count(&total).
			Error
		if err != nil {
			return err
		}

		return tx.
			Scopes(fileFilter(f), paginate(f.Page, f.Limit)).
			Order("date_modification desc, id desc").
			Find(&files).
			Error
	})
	if err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

func (s *Store) ListFilesByCreator(ctx context.Context, userID uint) ([]model.File, error) {
	files := []model.File{}

	err := s.db.WithContext(ctx).
		Where("cree_par_id = ?", userID).
		Order("date_creation desc, id desc").
		Find(&files).
		Error
	if err != nil {
		return nil, err
	}

	return files, nil
}

func fileFilter(f FileFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Search != "" {
			tx = tx.Where(`search_key LIKE ? ESCAPE '\'`, containsPattern(model.SearchTerm(f.Search)))
		}

		if f.Type != "" {
			tx = tx.Where(`type LIKE ? ESCAPE '\'`, containsPattern(f.Type))
		}

		return tx
	}
}

// normalizeType lowercases the MIME type, drops parameters and resolves
// known aliases (application/x-pdf -> application/pdf). Unknown types are kept
func normalizeType(t string) string {
	t = strings.TrimSpace(t)

	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}

	if m := mimetype.Lookup(mt); m != nil {
		if canonical, _, err := mime.ParseMediaType(m.String()); err == nil {
			return canonical
		}
	}

	return mt
}

func appendFileErrs(msgs []string, name, typ *string, size *int64) []string {
	if name != nil {
		msgs = appendErr(msgs, validators.FileNameValidator(*name))
	}

	if typ != nil && strings.TrimSpace(*typ) == "" {
		msgs = append(msgs, "type is required")
	}

	if size != nil && *size <= 0 {
		msgs = append(msgs, "taille must be positive")
	}

	return msgs
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
