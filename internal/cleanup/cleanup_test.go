package cleanup

import (
	"strings"
	"testing"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gdb := database.NewGormDBFromDB(db)
	if err := gdb.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	t.Cleanup(func() { gdb.Close() })
	return db
}

func seedFavorite(t *testing.T, db *gorm.DB, session string, ageDays int) *models.Favorite {
	t.Helper()

	property := models.Property{
		Title:           "Test listing",
		PropertyType:    models.PropertyTypeApartment,
		TransactionType: models.TransactionSale,
		Price:           100000,
		Area:            70,
		Address:         "1 Test St",
		City:            "Sofia",
		IsAvailable:     true,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("seed property: %v", err)
	}

	favorite := models.Favorite{
		UserSession: session,
		PropertyID:  property.ID,
		CreatedAt:   time.Now().AddDate(0, 0, -ageDays),
	}
	if err := db.Create(&favorite).Error; err != nil {
		t.Fatalf("seed favorite: %v", err)
	}
	return &favorite
}

func countFavorites(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Favorite{}).Count(&count).Error; err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	return count
}

func TestFindExpiredFavorites(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	seedFavorite(t, db, "session-old", 200)
	seedFavorite(t, db, "session-fresh", 10)

	expired, err := service.FindExpiredFavorites(180)
	if err != nil {
		t.Fatalf("FindExpiredFavorites: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("expected 1 expired favorite, got %d", len(expired))
	}
	if expired[0].UserSession != "session-old" {
		t.Fatalf("wrong favorite flagged as expired: %s", expired[0].UserSession)
	}
}

func TestRunDryRunDeletesNothing(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	seedFavorite(t, db, "session-old", 200)

	config := DefaultCleanupConfig()
	config.DryRun = true

	result, err := service.Run(config)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TargetCount != 1 || result.DeletedCount != 1 || !result.DryRun {
		t.Fatalf("unexpected dry-run result: %+v", result)
	}
	if countFavorites(t, db) != 1 {
		t.Fatal("dry run deleted rows")
	}
}

func TestRunDeletesOnlyExpired(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	seedFavorite(t, db, "session-old", 200)
	fresh := seedFavorite(t, db, "session-fresh", 10)

	result, err := service.Run(DefaultCleanupConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Fatalf("expected 1 deletion, got %d", result.DeletedCount)
	}

	var survivors []models.Favorite
	if err := db.Find(&survivors).Error; err != nil {
		t.Fatalf("load favorites: %v", err)
	}
	if len(survivors) != 1 || survivors[0].ID != fresh.ID {
		t.Fatalf("wrong rows survived cleanup: %+v", survivors)
	}
}

func TestRunSafetyLimit(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	for i := 0; i < 3; i++ {
		seedFavorite(t, db, "session-old", 200)
	}

	config := DefaultCleanupConfig()
	config.MaxDeletionCount = 2

	_, err := service.Run(config)
	if err == nil {
		t.Fatal("expected safety check error")
	}
	if !strings.Contains(err.Error(), "safety check failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if countFavorites(t, db) != 3 {
		t.Fatal("aborted run deleted rows")
	}
}

func TestRunNothingExpired(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)

	seedFavorite(t, db, "session-fresh", 10)

	result, err := service.Run(DefaultCleanupConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TargetCount != 0 || result.DeletedCount != 0 {
		t.Fatalf("expected nothing to delete, got %+v", result)
	}
}
