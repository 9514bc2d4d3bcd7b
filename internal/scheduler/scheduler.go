package scheduler

import (
	"fmt"
	"log"

	"github.com/Tonkata28/imotiko-website/internal/cleanup"
	"github.com/Tonkata28/imotiko-website/internal/config"
	"github.com/Tonkata28/imotiko-website/internal/ratelimit"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the daily favorites-retention cleanup and the hourly
// rate limiter prune
type Scheduler struct {
	cron      *cron.Cron
	cleanup   *cleanup.Service
	limiter   *ratelimit.Limiter
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler. limiter may be nil when rate
// limiting is not in use.
func NewScheduler(db *gorm.DB, cfg *config.Config, limiter *ratelimit.Limiter) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleanup: cleanup.NewService(db),
		limiter: limiter,
		config:  cfg,
	}
}

// Start registers the enabled jobs and starts the cron loop
func (s *Scheduler) Start() error {
	jobs := 0

	if s.config.Cleanup.Enabled {
		cronSpec := s.parseDailyRunTime(s.config.Cleanup.DailyRunTime)

		_, err := s.cron.AddFunc(cronSpec, func() {
			log.Println("Scheduler: Starting daily cleanup job...")
			if err := s.runCleanup(); err != nil {
				log.Printf("Scheduler: Daily cleanup failed: %v", err)
			} else {
				log.Println("Scheduler: Daily cleanup completed successfully")
			}
		})
		if err != nil {
			return err
		}
		jobs++
		log.Printf("Scheduler: Daily cleanup registered at %s (cron: %s)", s.config.Cleanup.DailyRunTime, cronSpec)
	} else {
		log.Println("Scheduler: Daily cleanup is disabled in configuration")
	}

	// One-shot anonymous callers leave idle limiter windows behind;
	// prune hourly so the client map stays bounded.
	if s.limiter != nil {
		_, err := s.cron.AddFunc("@hourly", s.limiter.Prune)
		if err != nil {
			return err
		}
		jobs++
		log.Println("Scheduler: Hourly rate limiter prune registered")
	}

	if jobs == 0 {
		return nil
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with %d job(s)", jobs)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

func (s *Scheduler) runCleanup() error {
	cfg := cleanup.DefaultCleanupConfig()
	if s.config.Cleanup.RetentionDays > 0 {
		cfg.RetentionDays = s.config.Cleanup.RetentionDays
	}
	if s.config.Cleanup.MaxDeletionCount > 0 {
		cfg.MaxDeletionCount = s.config.Cleanup.MaxDeletionCount
	}

	result, err := s.cleanup.Run(cfg)
	if err != nil {
		return err
	}

	log.Printf("Scheduler: Cleanup result: %d/%d favorites deleted",
		result.DeletedCount, result.TargetCount)
	return nil
}

// RunNow immediately executes the cleanup job (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - starting cleanup job...")
	return s.runCleanup()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "03:00" -> "0 3 * * *" (run at 3:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: Failed to parse time '%s', using default 03:00", timeStr)
	return "0 3 * * *"
}
