package database

import (
	"testing"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single pooled
// connection keeps concurrent test writers serialized at the pool
// instead of tripping sqlite's write lock.
func newTestDB(t *testing.T) *GormDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gdb := NewGormDBFromDB(db)
	if err := gdb.InitSchema(); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

// seedProperty creates a property with sensible defaults, applying any
// mutations first.
func seedProperty(t *testing.T, gdb *GormDB, mutate func(*models.Property)) *models.Property {
	t.Helper()

	property := &models.Property{
		Title:           "Two-bedroom apartment in Lozenets",
		Description:     "Bright apartment close to the park",
		PropertyType:    models.PropertyTypeApartment,
		TransactionType: models.TransactionSale,
		Price:           150000,
		Area:            85,
		Bedrooms:        2,
		Bathrooms:       1,
		Address:         "12 Krichim St",
		City:            "Sofia",
		IsAvailable:     true,
	}
	if mutate != nil {
		mutate(property)
	}

	if err := gdb.CreateProperty(property); err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	return property
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
