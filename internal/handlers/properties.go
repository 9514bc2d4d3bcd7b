package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/models"

	"github.com/gin-gonic/gin"
)

// PropertyHandler serves the public listing read paths
type PropertyHandler struct {
	db *database.GormDB
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(db *database.GormDB) *PropertyHandler {
	return &PropertyHandler{db: db}
}

// List handles GET /api/properties with the full filter surface
func (h *PropertyHandler) List(c *gin.Context) {
	filters := database.PropertyFilters{
		City:   c.Query("city"),
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sort", "created_at_desc"),
	}

	if propertyType := c.Query("property_type"); propertyType != "" {
		if !models.ValidPropertyType(models.PropertyType(propertyType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown property_type: " + propertyType})
			return
		}
		filters.PropertyType = propertyType
	}
	if transactionType := c.Query("transaction_type"); transactionType != "" {
		if !models.ValidTransactionType(models.TransactionType(transactionType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction_type: " + transactionType})
			return
		}
		filters.TransactionType = transactionType
	}

	// Bedroom / bathroom bounds
	if minStr := c.Query("min_bedrooms"); minStr != "" {
		if v, parseErr := strconv.Atoi(minStr); parseErr == nil && v >= 0 {
			filters.MinBedrooms = &v
		}
	}
	if maxStr := c.Query("max_bedrooms"); maxStr != "" {
		if v, parseErr := strconv.Atoi(maxStr); parseErr == nil && v >= 0 {
			filters.MaxBedrooms = &v
		}
	}
	if minStr := c.Query("min_bathrooms"); minStr != "" {
		if v, parseErr := strconv.Atoi(minStr); parseErr == nil && v >= 0 {
			filters.MinBathrooms = &v
		}
	}
	if maxStr := c.Query("max_bathrooms"); maxStr != "" {
		if v, parseErr := strconv.Atoi(maxStr); parseErr == nil && v >= 0 {
			filters.MaxBathrooms = &v
		}
	}

	// Price range (inclusive bounds)
	if minStr := c.Query("min_price"); minStr != "" {
		if v, parseErr := strconv.ParseFloat(minStr, 64); parseErr == nil {
			filters.MinPrice = &v
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if v, parseErr := strconv.ParseFloat(maxStr, 64); parseErr == nil {
			filters.MaxPrice = &v
		}
	}

	// Pagination parameters
	if pageStr := c.Query("page"); pageStr != "" {
		if page, parseErr := strconv.Atoi(pageStr); parseErr == nil && page > 0 {
			filters.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, parseErr := strconv.Atoi(limitStr); parseErr == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	start := time.Now()
	result, err := h.db.ListProperties(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query properties"})
		return
	}

	log.Printf("[Listing API] duration_ms=%d total=%d page=%d sort=%s search=%v",
		time.Since(start).Milliseconds(), result.Total, result.Page, filters.SortBy, filters.Search != "")

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/properties/:id. Every successful read counts as
// a view; the counter is bumped atomically before the row is loaded so
// the response carries the fresh count.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if _, err := h.db.IncrementViews(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property"})
		return
	}

	property, err := h.db.GetProperty(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property"})
		return
	}

	primary, err := h.db.ResolvePrimary(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property":      property,
		"primary_image": primary,
	})
}

// Featured handles GET /api/properties/featured
func (h *PropertyHandler) Featured(c *gin.Context) {
	properties, err := h.db.GetFeaturedProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query featured properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// BrowseSale handles GET /api/properties/sale
func (h *PropertyHandler) BrowseSale(c *gin.Context) {
	h.browseByTransaction(c, models.TransactionSale)
}

// BrowseRent handles GET /api/properties/rent
func (h *PropertyHandler) BrowseRent(c *gin.Context) {
	h.browseByTransaction(c, models.TransactionRent)
}

func (h *PropertyHandler) browseByTransaction(c *gin.Context, transaction models.TransactionType) {
	filters := database.PropertyFilters{
		TransactionType: string(transaction),
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, parseErr := strconv.Atoi(pageStr); parseErr == nil && page > 0 {
			filters.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, parseErr := strconv.Atoi(limitStr); parseErr == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	result, err := h.db.ListProperties(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query properties"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
