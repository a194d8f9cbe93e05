package db

import (
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// Migrate runs all pending migrations in dir.
func Migrate(db *gorm.DB, dir string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(sqlDB, dir)
}

// Rollback rolls back the last steps migrations (at least one).
func Rollback(db *gorm.DB, dir string, steps int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if steps <= 0 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, dir); err != nil {
			return err
		}
	}
	return nil
}

// MigrationStatus prints the migration status.
func MigrationStatus(db *gorm.DB, dir string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Status(sqlDB, dir)
}
