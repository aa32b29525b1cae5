package db

import (
	"bitwise74/user-api/internal/model"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	conn, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	assert.True(t, conn.Migrator().HasTable(&model.User{}))
	assert.True(t, conn.Migrator().HasTable(&model.File{}))
	assert.True(t, conn.Migrator().HasColumn(&model.File{}, "vues"))
}

func TestOpenTranslatesDuplicateKey(t *testing.T) {
	conn, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	u := model.User{LastName: "A", FirstNames: "B", Email: "a@x.com", PasswordHash: "h", Role: model.RoleUser}
	require.NoError(t, conn.Create(&u).Error)

	u.ID = 0
	err = conn.Create(&u).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestCheckMounted(t *testing.T) {
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Absolute paths are created even inside a container
	assert.NoError(t, checkMounted(filepath.Join(dir, "new.db"), true))
	assert.NoError(t, checkMounted(":memory:", true))
	assert.NoError(t, checkMounted("file:test.db?cache=shared", true))

	// Outside a container anything goes
	assert.NoError(t, checkMounted("missing.db", false))

	err := checkMounted("missing.db", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(dir, "missing.db"))
	assert.NotContains(t, err.Error(), "//")

	require.NoError(t, os.WriteFile("mounted.db", nil, 0o644))
	assert.NoError(t, checkMounted("mounted.db", true))
}
