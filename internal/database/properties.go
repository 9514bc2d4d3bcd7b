package database

import (
	"errors"
	"strings"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	featuredLimit   = 6
)

// PropertyFilters describes the optional predicates of a listing query.
// Nil pointer fields mean "no bound". All filters combine with AND; the
// availability scope is applied before any of them.
type PropertyFilters struct {
	PropertyType    string
	TransactionType string
	City            string

	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	MaxBathrooms *int

	MinPrice *float64
	MaxPrice *float64

	// Search matches case-insensitively against title, description,
	// address and city (OR across fields).
	Search string

	SortBy string
	Page   int
	Limit  int
}

// PropertyPage is a single page of listing results.
type PropertyPage struct {
	Properties []models.PropertySummary `json:"properties"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
}

// availableScope restricts a query to listable properties. Every public
// read path goes through this before user filters are applied.
func availableScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_available = ?", true)
}

// ListProperties composes the dynamic filters and returns one page of
// summaries plus the total match count.
func (gdb *GormDB) ListProperties(filters PropertyFilters) (*PropertyPage, error) {
	query := availableScope(gdb.db.Model(&models.Property{}))

	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.TransactionType != "" {
		query = query.Where("transaction_type = ?", filters.TransactionType)
	}
	if filters.City != "" {
		query = query.Where("city = ?", filters.City)
	}
	if filters.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *filters.MinBedrooms)
	}
	if filters.MaxBedrooms != nil {
		query = query.Where("bedrooms <= ?", *filters.MaxBedrooms)
	}
	if filters.MinBathrooms != nil {
		query = query.Where("bathrooms >= ?", *filters.MinBathrooms)
	}
	if filters.MaxBathrooms != nil {
		query = query.Where("bathrooms <= ?", *filters.MaxBathrooms)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ? OR LOWER(city) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var properties []models.Property
	err := query.
		Order(orderClause(filters.SortBy)).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	summaries, err := gdb.summarize(properties)
	if err != nil {
		return nil, err
	}

	return &PropertyPage{
		Properties: summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// orderClause maps a sort parameter to an ORDER BY clause
func orderClause(sortBy string) string {
	switch sortBy {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "area_asc":
		return "area ASC"
	case "area_desc":
		return "area DESC"
	case "views_asc":
		return "views_count ASC"
	case "views_desc":
		return "views_count DESC"
	case "created_at_asc":
		return "created_at ASC"
	default:
		// Default to newest first
		return "created_at DESC"
	}
}

// GetProperty retrieves an available property with its images, primary
// image first. Returns ErrNotFound for unknown or unavailable ids.
func (gdb *GormDB) GetProperty(id uint) (*models.Property, error) {
	var property models.Property
	err := availableScope(gdb.db).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// IncrementViews bumps the view counter of an available property by one
// using an atomic SQL expression, so concurrent reads never lose an
// update, and returns the new count.
func (gdb *GormDB) IncrementViews(id uint) (uint, error) {
	result := availableScope(gdb.db.Model(&models.Property{})).
		Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var count uint
	err := gdb.db.Model(&models.Property{}).
		Where("id = ?", id).
		Pluck("views_count", &count).Error
	return count, err
}

// GetFeaturedProperties returns up to six featured available listings,
// newest first.
func (gdb *GormDB) GetFeaturedProperties() ([]models.PropertySummary, error) {
	var properties []models.Property
	err := availableScope(gdb.db).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(featuredLimit).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return gdb.summarize(properties)
}

// summarize projects properties into listing summaries, resolving
// primary images in one batched query.
func (gdb *GormDB) summarize(properties []models.Property) ([]models.PropertySummary, error) {
	summaries := make([]models.PropertySummary, 0, len(properties))
	if len(properties) == 0 {
		return summaries, nil
	}

	ids := make([]uint, len(properties))
	for i := range properties {
		ids[i] = properties[i].ID
	}

	primaries, err := gdb.primaryImagesFor(ids)
	if err != nil {
		return nil, err
	}

	for i := range properties {
		var primary *string
		if url, ok := primaries[properties[i].ID]; ok {
			primary = &url
		}
		summaries = append(summaries, properties[i].Summary(primary))
	}
	return summaries, nil
}

// CreateProperty persists a new listing (admin write path).
func (gdb *GormDB) CreateProperty(p *models.Property) error {
	return gdb.db.Create(p).Error
}

// UpdateProperty applies field updates to an existing listing.
func (gdb *GormDB) UpdateProperty(id uint, updates map[string]interface{}) (*models.Property, error) {
	result := gdb.db.Model(&models.Property{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var property models.Property
	if err := gdb.db.First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// DeleteProperty removes a listing and all records owned by it. The
// cascade is explicit so it holds regardless of engine FK enforcement.
func (gdb *GormDB) DeleteProperty(id uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Inquiry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}

// propertyExists checks existence without the availability scope;
// favorites and inquiries may reference unavailable listings.
func (gdb *GormDB) propertyExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
