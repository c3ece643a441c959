package database

import (
	"github.com/calltrack/dnc-registry/internal/config"
	"github.com/calltrack/dnc-registry/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and returns the handle. The handle
// is passed explicitly to repositories; there is no package-level singleton.
// TranslateError makes unique-constraint violations surface as
// gorm.ErrDuplicatedKey, so concurrent duplicate writes are decided by the
// store, not by a racy pre-check.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for all registry models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Reason{}, &models.DNCEntry{})
}
