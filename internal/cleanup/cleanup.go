package cleanup

import (
	"fmt"
	"log"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/gorm"
)

// Service purges stale anonymous favorites. Session tokens are never
// reaped client-side, so favorite rows accumulate until this runs.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CleanupConfig holds configuration for cleanup operations
type CleanupConfig struct {
	RetentionDays    int  // Days to keep favorites before deletion (default: 180)
	MaxDeletionCount int  // Maximum number of rows to delete in one run (safety limit)
	DryRun           bool // If true, only log what would be deleted without actually deleting
}

// DefaultCleanupConfig returns default configuration
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		RetentionDays:    180,
		MaxDeletionCount: 10000,
		DryRun:           false,
	}
}

// CleanupResult holds the result of a cleanup operation
type CleanupResult struct {
	TargetCount  int       `json:"target_count"`  // Rows eligible for deletion
	DeletedCount int       `json:"deleted_count"` // Rows actually deleted
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// FindExpiredFavorites finds favorites older than the retention window.
func (s *Service) FindExpiredFavorites(retentionDays int) ([]models.Favorite, error) {
	var favorites []models.Favorite

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Where("created_at < ?", cutoffDate).Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired favorites: %w", err)
	}

	log.Printf("[Cleanup] Found %d favorites older than %s", len(favorites), cutoffDate.Format("2006-01-02"))
	return favorites, nil
}

// Run deletes expired favorites according to config.
func (s *Service) Run(config CleanupConfig) (*CleanupResult, error) {
	result := &CleanupResult{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	expired, err := s.FindExpiredFavorites(config.RetentionDays)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(expired)

	if result.TargetCount == 0 {
		log.Println("[Cleanup] No expired favorites found")
		return result, nil
	}

	// Safety check: abort if too many rows would be deleted
	if result.TargetCount > config.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d favorites exceed max deletion limit of %d",
			result.TargetCount, config.MaxDeletionCount)
	}

	if config.DryRun {
		log.Printf("[Cleanup] [DRY-RUN] Would delete %d favorites (retention: %d days)",
			result.TargetCount, config.RetentionDays)
		result.DeletedCount = result.TargetCount
		return result, nil
	}

	ids := make([]uint, len(expired))
	for i, fav := range expired {
		ids[i] = fav.ID
	}

	if err := s.db.Delete(&models.Favorite{}, ids).Error; err != nil {
		return nil, fmt.Errorf("failed to delete expired favorites: %w", err)
	}
	result.DeletedCount = len(ids)

	log.Printf("[Cleanup] Deleted %d/%d expired favorites (retention: %d days)",
		result.DeletedCount, result.TargetCount, config.RetentionDays)

	return result, nil
}
