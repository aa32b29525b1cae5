package store

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type NewUser struct {
	LastName   string
	FirstNames string
	Email      string
	Password   string
	Role       model.Role // Empty means model.RoleUser
}

// UserUpdate only applies the fields that are set
type UserUpdate struct {
	LastName   *string
	FirstNames *string
	Email      *string
	Password   *string
	Role       *model.Role
	Active     *bool
}

// UserFilter options are ANDed together. Zero values impose no constraint
type UserFilter struct {
	Page   int
	Limit  int
	Search string // Matches nom, prenoms or email, case-insensitive
	Role   *model.Role
	Active *bool
}

func (s *Store) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.RoleUser
	}

	var msgs []string
	msgs = appendNameErrs(msgs, &in.LastName, &in.FirstNames)
	msgs = appendErr(msgs, validators.EmailValidator(in.Email))
	msgs = appendErr(msgs, validators.PasswordValidator(in.Password))
	msgs = appendErr(msgs, validators.RoleValidator(in.Role))
	if len(msgs) > 0 {
		return nil, &ValidationError{Errors: msgs}
	}

	hash, err := s.hasher.GenerateFromPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user := &model.User{
		LastName:     in.LastName,
		FirstNames:   in.FirstNames,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    s.timestamp(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, in.Email, 0)
		if err != nil {
			return err
		}

		if taken {
			return ErrDuplicateEmail
		}

		return tx.Create(user).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// GetUser returns nil without an error when no user has this id
func (s *Store) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByEmail is an exact, case-sensitive match
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, in UserUpdate) (*model.User, error) {
	var msgs []string
	msgs = appendNameErrs(msgs, in.LastName, in.FirstNames)
	if in.Email != nil {
		msgs = appendErr(msgs, validators.EmailValidator(*in.Email))
	}
	if in.Password != nil {
		msgs = appendErr(msgs, validators.PasswordValidator(*in.Password))
	}
	if in.Role != nil {
		msgs = appendErr(msgs, validators.RoleValidator(*in.Role))
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Errors: msgs}
	}

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = s.hasher.GenerateFromPassword(*in.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password, %w", err)
		}
	}

	var user model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}

			return err
		}

		if in.Email != nil && *in.Email != user.Email {
			taken, err := emailTaken(tx, *in.Email, user.ID)
			if err != nil {
				return err
			}

			if taken {
				return ErrDuplicateEmail
			}

			user.Email = *in.Email
		}

		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if in.FirstNames != nil {
			user.FirstNames = *in.FirstNames
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		if in.Active != nil {
			user.Active = *in.Active
		}
		if hash != "" {
			user.PasswordHash = hash
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// DeleteUser reports whether a user was actually removed. Files created by the
// user are left untouched
func (s *Store) DeleteUser(ctx context.Context, id uint) (bool, error) {
	r := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if r.Error != nil {
		return false, r.Error
	}

	return r.RowsAffected > 0, nil
}

// ListUsers returns one page of users, newest first, and the number of users
// matching the filter before pagination
func (s *Store) ListUsers(ctx context.Context, f UserFilter) ([]model.User, int64, error) {
	var (
		users []model.User
		total int64
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.User{}).
			Scopes(userFilter(f)).
			Count(&total).
			Error
		if err != nil {
			return err
		}

		return tx.
			Scopes(userFilter(f), paginate(f.Page, f.Limit)).
			Order("date_creation desc, id desc").
			Find(&users).
			Error
	})
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func userFilter(f UserFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Search != "" {
			tx = tx.Where(`search_key LIKE ? ESCAPE '\'`, containsPattern(model.SearchTerm(f.Search)))
		}

		if f.Role != nil {
			tx = tx.Where("role = ?", *f.Role)
		}

		if f.Active != nil {
			tx = tx.Where("actif = ?", *f.Active)
		}

		return tx
	}
}

// paginate only slices when both page and limit are set
func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if page <= 0 || limit <= 0 {
			return tx
		}

		return tx.Offset((page - 1) * limit).Limit(limit)
	}
}

func emailTaken(tx *gorm.DB, email string, exclude uint) (bool, error) {
	var n int64

	err := tx.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exclude).
		Count(&n).
		Error

	return n > 0, err
}

func appendErr(msgs []string, err error) []string {
	if err != nil {
		return append(msgs, err.Error())
	}

	return msgs
}

// appendNameErrs checks names that are being set, nil means "not provided"
func appendNameErrs(msgs []string, lastName, firstNames *string) []string {
	if lastName != nil && strings.TrimSpace(*lastName) == "" {
		msgs = append(msgs, "nom is required")
	}

	if firstNames != nil && strings.TrimSpace(*firstNames) == "" {
		msgs = append(msgs, "prenoms is required")
	}

	return msgs
}
