// Package database owns the gorm connection and schema migration.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"giglog/internal/domain"
)

// Connect opens the database named by url. Postgres URLs go through the
// pgx-backed driver; anything else is treated as a sqlite DSN, which the
// dev and test setups use.
func Connect(url string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: url}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate applies the schema for every domain model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.RefreshToken{},
		&domain.AuthCode{},
		&domain.Company{},
		&domain.Job{},
		&domain.Payment{},
		&domain.WorkSession{},
	)
}
