package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/cleanup"
	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the listing management surface. Authentication
// is expected to be layered in front of these routes in production.
type AdminHandler struct {
	db             *database.GormDB
	cleanupService *cleanup.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *database.GormDB) *AdminHandler {
	return &AdminHandler{
		db:             db,
		cleanupService: cleanup.NewService(db.DB()),
	}
}

type propertyInput struct {
	Title           string   `json:"title" binding:"required,max=200"`
	Description     string   `json:"description"`
	PropertyType    string   `json:"property_type" binding:"required"`
	TransactionType string   `json:"transaction_type" binding:"required"`
	Price           float64  `json:"price" binding:"required,gte=0"`
	Area            float64  `json:"area" binding:"required,gte=0"`
	Bedrooms        int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms       int      `json:"bathrooms" binding:"omitempty,min=1"`
	Floor           *int     `json:"floor"`
	YearBuilt       *int     `json:"year_built" binding:"omitempty,min=1800,max=2030"`
	Address         string   `json:"address" binding:"required,max=255"`
	City            string   `json:"city" binding:"required,max=100"`
	PostalCode      string   `json:"postal_code" binding:"omitempty,max=10"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ContactPhone    string   `json:"contact_phone" binding:"omitempty,max=20"`
	ContactEmail    string   `json:"contact_email" binding:"omitempty,email"`
	IsFeatured      bool     `json:"is_featured"`
	IsAvailable     *bool    `json:"is_available"`
}

// CreateProperty handles POST /api/admin/properties
func (h *AdminHandler) CreateProperty(c *gin.Context) {
	var req propertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}
	if !models.ValidPropertyType(models.PropertyType(req.PropertyType)) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"property_type": "Unknown property type."}})
		return
	}
	if !models.ValidTransactionType(models.TransactionType(req.TransactionType)) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"transaction_type": "Unknown transaction type."}})
		return
	}

	property := models.Property{
		Title:           req.Title,
		Description:     req.Description,
		PropertyType:    models.PropertyType(req.PropertyType),
		TransactionType: models.TransactionType(req.TransactionType),
		Price:           req.Price,
		Area:            req.Area,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Floor:           req.Floor,
		YearBuilt:       req.YearBuilt,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		IsFeatured:      req.IsFeatured,
		IsAvailable:     true,
	}
	if req.Bathrooms == 0 {
		property.Bathrooms = 1
	}
	if req.IsAvailable != nil {
		property.IsAvailable = *req.IsAvailable
	}

	if err := h.db.CreateProperty(&property); err != nil {
		log.Printf("Admin: Failed to create property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// UpdateProperty handles PUT /api/admin/properties/:id with partial updates
func (h *AdminHandler) UpdateProperty(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var req struct {
		Title           *string  `json:"title" binding:"omitempty,max=200"`
		Description     *string  `json:"description"`
		PropertyType    *string  `json:"property_type"`
		TransactionType *string  `json:"transaction_type"`
		Price           *float64 `json:"price" binding:"omitempty,gte=0"`
		Area            *float64 `json:"area" binding:"omitempty,gte=0"`
		Bedrooms        *int     `json:"bedrooms" binding:"omitempty,gte=0"`
		Bathrooms       *int     `json:"bathrooms" binding:"omitempty,min=1"`
		Floor           *int     `json:"floor"`
		YearBuilt       *int     `json:"year_built" binding:"omitempty,min=1800,max=2030"`
		Address         *string  `json:"address" binding:"omitempty,max=255"`
		City            *string  `json:"city" binding:"omitempty,max=100"`
		PostalCode      *string  `json:"postal_code" binding:"omitempty,max=10"`
		ContactPhone    *string  `json:"contact_phone" binding:"omitempty,max=20"`
		ContactEmail    *string  `json:"contact_email" binding:"omitempty,email"`
		IsFeatured      *bool    `json:"is_featured"`
		IsAvailable     *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Area != nil {
		updates["area"] = *req.Area
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if req.Floor != nil {
		updates["floor"] = req.Floor
	}
	if req.YearBuilt != nil {
		updates["year_built"] = req.YearBuilt
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if req.PropertyType != nil {
		if !models.ValidPropertyType(models.PropertyType(*req.PropertyType)) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"property_type": "Unknown property type."}})
			return
		}
		updates["property_type"] = *req.PropertyType
	}
	if req.TransactionType != nil {
		if !models.ValidTransactionType(models.TransactionType(*req.TransactionType)) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"transaction_type": "Unknown transaction type."}})
			return
		}
		updates["transaction_type"] = *req.TransactionType
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	property, err := h.db.UpdateProperty(id, updates)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// DeleteProperty handles DELETE /api/admin/properties/:id. Images,
// inquiries and favorites of the property go with it.
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if err := h.db.DeleteProperty(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		log.Printf("Admin: Failed to delete property %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	log.Printf("Admin: Deleted property %d with owned records", id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// AddImage handles POST /api/admin/properties/:id/images
func (h *AdminHandler) AddImage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var req struct {
		ImageURL  string `json:"image_url" binding:"required"`
		IsPrimary bool   `json:"is_primary"`
		Caption   string `json:"caption" binding:"omitempty,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	image := models.PropertyImage{
		ImageURL:  req.ImageURL,
		IsPrimary: req.IsPrimary,
		Caption:   req.Caption,
	}
	if err := h.db.UpsertImage(id, &image); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

// SetPrimaryImage handles PUT /api/admin/properties/:id/images/:imageId/primary
func (h *AdminHandler) SetPrimaryImage(c *gin.Context) {
	propertyID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	imageID, err := parseID(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := h.db.SetPrimaryImage(propertyID, imageID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set primary image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"primary_image_id": imageID})
}

// DeleteImage handles DELETE /api/admin/images/:id
func (h *AdminHandler) DeleteImage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := h.db.DeleteImage(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListInquiries handles GET /api/admin/inquiries
func (h *AdminHandler) ListInquiries(c *gin.Context) {
	var isRead *bool
	if readStr := c.Query("is_read"); readStr != "" {
		if v, parseErr := strconv.ParseBool(readStr); parseErr == nil {
			isRead = &v
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	inquiries, total, err := h.db.ListInquiries(isRead, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"total":     total,
		"count":     len(inquiries),
	})
}

// MarkInquiryRead handles PUT /api/admin/inquiries/:id/read
func (h *AdminHandler) MarkInquiryRead(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	if err := h.db.MarkInquiryRead(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_read": true})
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})
	db := h.db.DB()

	// Property counts by availability
	var availableCount, unavailableCount int64
	db.Model(&models.Property{}).Where("is_available = ?", true).Count(&availableCount)
	db.Model(&models.Property{}).Where("is_available = ?", false).Count(&unavailableCount)

	stats["properties"] = map[string]interface{}{
		"available":   availableCount,
		"unavailable": unavailableCount,
		"total":       availableCount + unavailableCount,
	}

	// Inquiries
	var totalInquiries int64
	db.Model(&models.Inquiry{}).Count(&totalInquiries)
	unread, err := h.db.CountUnreadInquiries()
	if err != nil {
		log.Printf("Admin: Failed to count unread inquiries: %v", err)
	}
	stats["inquiries"] = map[string]interface{}{
		"total":  totalInquiries,
		"unread": unread,
	}

	// Favorites
	favorites, err := h.db.CountFavorites()
	if err != nil {
		log.Printf("Admin: Failed to count favorites: %v", err)
	}
	stats["favorites"] = map[string]interface{}{
		"total": favorites,
	}

	// Recent activity (last 24 hours)
	last24h := time.Now().AddDate(0, 0, -1)
	var recentProperties, recentInquiries int64
	db.Model(&models.Property{}).Where("created_at >= ?", last24h).Count(&recentProperties)
	db.Model(&models.Inquiry{}).Where("created_at >= ?", last24h).Count(&recentInquiries)
	stats["recent_activity"] = map[string]interface{}{
		"properties_last_24h": recentProperties,
		"inquiries_last_24h":  recentInquiries,
	}

	c.JSON(http.StatusOK, stats)
}

// RunCleanup executes deletion of stale anonymous favorites
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	var req struct {
		RetentionDays    int  `json:"retention_days"`     // Days to keep (default: 180)
		MaxDeletionCount int  `json:"max_deletion_count"` // Safety limit (default: 10000)
		DryRun           bool `json:"dry_run"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := cleanup.DefaultCleanupConfig()
	if req.RetentionDays > 0 {
		config.RetentionDays = req.RetentionDays
	}
	if req.MaxDeletionCount > 0 {
		config.MaxDeletionCount = req.MaxDeletionCount
	}
	config.DryRun = req.DryRun

	log.Printf("Admin: Running cleanup (retention: %d days, max: %d, dry-run: %v)",
		config.RetentionDays, config.MaxDeletionCount, config.DryRun)

	result, err := h.cleanupService.Run(config)
	if err != nil {
		log.Printf("Admin: Cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
