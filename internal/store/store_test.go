package store

import (
	"bitwise74/user-api/db"
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/security"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)}
	s := New(conn, security.NewWithParams(1024, 1, 1), WithClock(clock.Now))

	return s, clock
}

func mustCreateUser(t *testing.T, s *Store, email string, role model.Role) *model.User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), NewUser{
		LastName:   "Doe",
		FirstNames: "John",
		Email:      email,
		Password:   "secret1",
		Role:       role,
	})
	require.NoError(t, err)

	return u
}

func ptr[T any](v T) *T {
	return &v
}
