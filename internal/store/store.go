// Package store is the single source of truth for user and file records.
// Every operation runs in its own transaction, concurrent writes to the same
// record are last-write-wins
package store

import (
	"bitwise74/user-api/pkg/security"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateEmail  = errors.New("a user with this email already exists")
	ErrNotFound        = errors.New("record not found")
	ErrCreatorNotFound = errors.New("creator does not exist")
)

// ValidationError carries one human readable message per rejected field
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type Store struct {
	db     *gorm.DB
	hasher *security.ArgonHash
	now    func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(db *gorm.DB, hasher *security.ArgonHash, opts ...Option) *Store {
	s := &Store{
		db:     db,
		hasher: hasher,
		now:    time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// timestamp is the current time as it will be persisted. Postgres keeps
// microseconds so everything is truncated to that to round trip cleanly
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}

	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s taken literally
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
