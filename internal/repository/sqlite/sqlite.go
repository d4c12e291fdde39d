// Package sqlite persists the collections in a single SQLite database via
// GORM. It offers the same repository surface as the jsonfile backend for
// setups where one growing JSON document per collection stops being
// practical.
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database at path (":memory:" works for tests) and
// migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&SubscriptionModel{},
		&EventModel{},
		&UsageCheckModel{},
		&PaymentMethodModel{},
		&SettingsModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}
