package models

import (
	"path/filepath"
	"testing"

	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDialectorFor(t *testing.T) {
	rootDir := t.TempDir()

	t.Run("sqlite defaults to the root dir", func(t *testing.T) {
		dialector, err := dialectorFor(shared.DatabaseConfig{Driver: shared.SQLITE_DRIVER}, rootDir)
		assert.Nil(t, err)
		assert.Equal(t, "sqlite", dialector.Name())
		assert.True(t, utils.FileExist(filepath.Join(rootDir, "db")), "Expected db dir to be created")
	})

	t.Run("postgres requires a dsn", func(t *testing.T) {
		_, err := dialectorFor(shared.DatabaseConfig{Driver: shared.POSTGRES_DRIVER}, rootDir)
		assert.NotNil(t, err)

		dialector, err := dialectorFor(shared.DatabaseConfig{
			Driver:   shared.POSTGRES_DRIVER,
			Postgres: shared.PostgresConfig{DSN: "host=localhost user=rolodex dbname=rolodex"},
		}, rootDir)
		assert.Nil(t, err)
		assert.Equal(t, "postgres", dialector.Name())
	})

	t.Run("unknown drivers are rejected", func(t *testing.T) {
		_, err := dialectorFor(shared.DatabaseConfig{Driver: "mysql"}, rootDir)
		assert.NotNil(t, err)
	})
}

func TestAutoMigrateSqlite(t *testing.T) {
	err := AutoMigrate(shared.DatabaseConfig{
		Driver: shared.SQLITE_DRIVER,
		Sqlite: shared.SqliteConfig{Dir: t.TempDir()},
	}, "")
	assert.Nil(t, err)
	defer CloseDB()

	for _, table := range []interface{}{&User{}, &Contact{}, &Address{}} {
		assert.True(t, db.Migrator().HasTable(table), "Expected table for %T", table)
	}
}

func TestDbErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	savedLogger := logg
	UseLogger(zap.New(core).Sugar())
	defer UseLogger(savedLogger)

	InitializeTestDb()

	err := db.Exec("SELECT * FROM missing_table").Error
	assert.NotNil(t, err)

	require.NotZero(t, logs.Len(), "Expected gorm error to go through the zap logger")
	assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	assert.Contains(t, logs.All()[0].Message, "missing_table")
}
