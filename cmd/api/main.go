package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/config"
	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/handlers"
	"github.com/Tonkata28/imotiko-website/internal/ratelimit"
	"github.com/Tonkata28/imotiko-website/internal/scheduler"
	"github.com/Tonkata28/imotiko-website/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	db           *database.GormDB
	appConfig    *config.Config
	sessions     *session.Manager
	writeLimiter *ratelimit.Limiter
	appScheduler *scheduler.Scheduler
)

func main() {
	// Load .env in development; production sets real environment variables
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, relying on environment")
		}
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "postgres")
	}

	if dbType == "mysql" {
		log.Println("Using MySQL")
		mysqlCfg := appConfig.Database.MySQL

		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		db, err = database.NewMySQL(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "imotiko_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "imotiko_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "imotiko_db"),
		)
	} else {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		db, err = database.NewPostgres(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "imotiko_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "imotiko_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "imotiko_db"),
			pgCfg.SSLMode,
		)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Session manager for anonymous favorites
	sessionSecret := getEnvOrConfig(appConfig.Session.Secret, "SESSION_SECRET", "")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET is required (config session.secret or environment)")
	}
	sessions = session.NewManager(sessionSecret, appConfig.Session.CookieName, appConfig.Session.SessionMaxAge())

	// Rate limiter for anonymous write endpoints
	writeLimiter = ratelimit.NewLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	// Initialize and start scheduler (daily cleanup + hourly limiter prune)
	appScheduler = scheduler.NewScheduler(db.DB(), appConfig, writeLimiter)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	propertyHandler := handlers.NewPropertyHandler(db)
	favoriteHandler := handlers.NewFavoriteHandler(db, sessions)
	inquiryHandler := handlers.NewInquiryHandler(db)
	statsHandler := handlers.NewStatsHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// Routes
	r.GET("/health", healthCheck)

	r.GET("/api/properties", propertyHandler.List)
	r.GET("/api/properties/featured", propertyHandler.Featured)
	r.GET("/api/properties/sale", propertyHandler.BrowseSale)
	r.GET("/api/properties/rent", propertyHandler.BrowseRent)
	r.GET("/api/properties/:id", propertyHandler.Get)

	r.GET("/api/stats", statsHandler.Get)

	// Anonymous write endpoints with rate limiting
	r.POST("/api/inquiries", rateLimitMiddleware(), inquiryHandler.Create)
	r.POST("/api/favorites/toggle", rateLimitMiddleware(), favoriteHandler.Toggle)
	r.GET("/api/favorites", favoriteHandler.List)

	r.GET("/api/ratelimit/stats", getRateLimitStats)

	// Admin API routes (requires authentication in production)
	admin := r.Group("/api/admin")
	{
		admin.POST("/properties", adminHandler.CreateProperty)
		admin.PUT("/properties/:id", adminHandler.UpdateProperty)
		admin.DELETE("/properties/:id", adminHandler.DeleteProperty)

		admin.POST("/properties/:id/images", adminHandler.AddImage)
		admin.PUT("/properties/:id/images/:imageId/primary", adminHandler.SetPrimaryImage)
		admin.DELETE("/images/:id", adminHandler.DeleteImage)

		admin.GET("/inquiries", adminHandler.ListInquiries)
		admin.PUT("/inquiries/:id/read", adminHandler.MarkInquiryRead)

		admin.GET("/stats", adminHandler.GetStats)
		admin.POST("/cleanup/run", adminHandler.RunCleanup)
	}
	log.Println("Admin API routes registered at /api/admin/*")

	port := getEnv("PORT", fmt.Sprintf("%d", appConfig.Server.Port))
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// rateLimitMiddleware enforces per-client limits on anonymous writes.
// The session token keys the limiter when present; the remote address
// covers first-time callers.
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := sessions.Token(c.Request)
		if clientKey == "" {
			clientKey = c.ClientIP()
		}

		if !writeLimiter.Allow(clientKey) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// getRateLimitStats returns current rate limiter statistics
func getRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, writeLimiter.GetStats())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
