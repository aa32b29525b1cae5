// Package service holds startup tasks that run against the store
package service

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/internal/store"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type AdminSeed struct {
	LastName   string
	FirstNames string
	Email      string
	Password   string
}

// SeedAdmin creates the first administrator when the database has no users
// yet. It returns the created user, or nil if nothing was done
func SeedAdmin(ctx context.Context, s *store.Store, seed AdminSeed) (*model.User, error) {
	if seed.Email == "" {
		return nil, nil
	}

	n, err := s.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users, %w", err)
	}

	if n > 0 {
		zap.L().Debug("Users already exist, skipping admin seed")
		return nil, nil
	}

	if seed.LastName == "" {
		seed.LastName = "Admin"
	}
	if seed.FirstNames == "" {
		seed.FirstNames = "Admin"
	}

	u, err := s.CreateUser(ctx, store.NewUser{
		LastName:   seed.LastName,
		FirstNames: seed.FirstNames,
		Email:      seed.Email,
		Password:   seed.Password,
		Role:       model.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed admin, %w", err)
	}

	zap.L().Info("Seeded administrator account", zap.String("email", u.Email))
	return u, nil
}
