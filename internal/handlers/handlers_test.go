package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/models"
	"github.com/Tonkata28/imotiko-website/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *database.GormDB {
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
	return gdb
}

func newSessionManager() *session.Manager {
	return session.NewManager("test-secret-key", "imotiko_session", 24*time.Hour)
}

// newRouter wires the public and admin routes the way cmd/api does,
// without middleware.
func newRouter(gdb *database.GormDB) *gin.Engine {
	r := gin.New()

	properties := NewPropertyHandler(gdb)
	favorites := NewFavoriteHandler(gdb, newSessionManager())
	inquiries := NewInquiryHandler(gdb)
	stats := NewStatsHandler(gdb)
	admin := NewAdminHandler(gdb)

	api := r.Group("/api")
	{
		api.GET("/properties", properties.List)
		api.GET("/properties/featured", properties.Featured)
		api.GET("/properties/sale", properties.BrowseSale)
		api.GET("/properties/rent", properties.BrowseRent)
		api.GET("/properties/:id", properties.Get)
		api.GET("/stats", stats.Get)
		api.POST("/inquiries", inquiries.Create)
		api.POST("/favorites/toggle", favorites.Toggle)
		api.GET("/favorites", favorites.List)

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/properties", admin.CreateProperty)
			adminGroup.PUT("/properties/:id", admin.UpdateProperty)
			adminGroup.DELETE("/properties/:id", admin.DeleteProperty)
			adminGroup.POST("/properties/:id/images", admin.AddImage)
			adminGroup.PUT("/properties/:id/images/:imageId/primary", admin.SetPrimaryImage)
			adminGroup.DELETE("/images/:id", admin.DeleteImage)
			adminGroup.GET("/inquiries", admin.ListInquiries)
			adminGroup.PUT("/inquiries/:id/read", admin.MarkInquiryRead)
			adminGroup.GET("/stats", admin.GetStats)
		}
	}
	return r
}

func seedProperty(t *testing.T, gdb *database.GormDB, mutate func(*models.Property)) *models.Property {
	t.Helper()

	property := models.Property{
		Title:           "Two-bedroom apartment in Lozenets",
		Description:     "Bright south-facing apartment",
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
		mutate(&property)
	}
	if err := gdb.CreateProperty(&property); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return &property
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}
