package store

import (
	"bitwise74/user-api/internal/model"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Authenticate fails closed: an unknown email, an inactive account and a wrong
// password all return a nil user and no error. On success the last login is
// moved to now
func (s *Store) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil || !user.Active {
		return nil, nil
	}

	ok, err := s.hasher.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, nil
	}

	now := s.timestamp()
	updates := map[string]any{"derniere_connexion": now}

	// Imported bcrypt accounts move to argon2id on their first login
	if s.hasher.NeedsRehash(user.PasswordHash) {
		hash, err := s.hasher.GenerateFromPassword(password)
		if err != nil {
			zap.L().Warn("Failed to upgrade legacy password hash", zap.Uint("userID", user.ID), zap.Error(err))
		} else {
			updates["password"] = hash
			user.PasswordHash = hash
		}
	}

	err = s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		UpdateColumns(updates).
		Error
	if err != nil {
		return nil, err
	}

	user.LastLogin = &now
	return user, nil
}

// TouchLastLogin does nothing if the user doesn't exist
func (s *Store) TouchLastLogin(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("derniere_connexion", s.timestamp()).
		Error
}
