package models

import (
	"fmt"
	"path/filepath"

	"github.com/Daskott/rolodex/server/auth"
	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "rolodex.db"

var logg = logger.NewLogger(true)
var db *gorm.DB

// UseLogger replaces the package logger.
func UseLogger(l *zap.SugaredLogger) {
	logg = l
}

// AutoMigrate opens the db described by config & auto-migrates the schema.
// dbRootDir is used for sqlite when config.Sqlite.Dir is empty.
func AutoMigrate(config shared.DatabaseConfig, dbRootDir string) error {
	dialector, err := dialectorFor(config, dbRootDir)
	if err != nil {
		return err
	}

	err = openDB(dialector)
	if err != nil {
		return err
	}

	return migrate()
}

// InitializeTestDb opens a fresh in-memory sqlite db with the schema in place.
// Password hashing is made cheap so tests stay fast.
func InitializeTestDb() {
	auth.PasswordHashCost = bcrypt.MinCost

	// Drop the db left behind by a previous test
	if err := CloseDB(); err != nil {
		logg.Warn(err)
	}

	dsn := fmt.Sprintf("file:rolodex-test-%v?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	if err := openDB(sqlite.Open(dsn)); err != nil {
		logg.Panic(err)
	}

	// A single connection keeps the in-memory db alive & avoids shared-cache table locks
	sqlDB, err := db.DB()
	if err != nil {
		logg.Panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(); err != nil {
		logg.Panic(err)
	}
}

// CloseDB closes the underlying connection pool.
func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func migrate() error {
	err := db.AutoMigrate(&User{}, &Contact{}, &Address{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate db schema")
	}

	return nil
}

func openDB(dialector gorm.Dialector) error {
	// gorm only reports errors, so its lines go out at error level
	gormWriter, err := zap.NewStdLogAt(logg.Desugar(), zap.ErrorLevel)
	if err != nil {
		return errors.Wrap(err, "failed to create db logger")
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormLogger.New(
			gormWriter,
			gormLogger.Config{
				LogLevel:                  gormLogger.Error,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return errors.Wrap(err, "failed to connect database")
	}

	return nil
}

func dialectorFor(config shared.DatabaseConfig, dbRootDir string) (gorm.Dialector, error) {
	switch config.Driver {
	case shared.POSTGRES_DRIVER:
		if config.Postgres.DSN == "" {
			return nil, errors.Errorf("database.postgres.dsn is required for the %v driver", config.Driver)
		}
		return postgres.Open(config.Postgres.DSN), nil

	case shared.SQLITE_DRIVER:
		dir := config.Sqlite.Dir
		if dir == "" {
			dir = dbRootDir
		}

		dsn, err := sqliteDSN(dir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to set sqlite DSN")
		}
		return sqlite.Open(dsn), nil
	}

	return nil, errors.Errorf("unsupported database driver: %q", config.Driver)
}

func sqliteDSN(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_journal_mode=WAL&_foreign_keys=on",
		filepath.Join(dbDir, DB_NAME),
	), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}
