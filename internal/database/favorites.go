package database

import (
	"errors"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/gorm"
)

// ToggleFavorite flips the favorite state of (session, propertyID) and
// reports the resulting state. The pair is unique at the storage layer,
// so two racing toggles cannot both insert: the loser of the race gets
// a duplicate-key error and the row simply exists, which is what
// favorited=true means.
func (gdb *GormDB) ToggleFavorite(session string, propertyID uint) (bool, error) {
	exists, err := gdb.propertyExists(gdb.db, propertyID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}

	result := gdb.db.
		Where("user_session = ? AND property_id = ?", session, propertyID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	favorite := models.Favorite{
		UserSession: session,
		PropertyID:  propertyID,
	}
	err = gdb.db.Create(&favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFavorites returns summaries of the properties favorited by the
// session, most recently favorited first. An unknown session yields an
// empty list.
func (gdb *GormDB) ListFavorites(session string) ([]models.PropertySummary, error) {
	var favorites []models.Favorite
	err := gdb.db.
		Where("user_session = ?", session).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []models.PropertySummary{}, nil
	}

	ids := make([]uint, len(favorites))
	for i, fav := range favorites {
		ids[i] = fav.PropertyID
	}

	var properties []models.Property
	if err := gdb.db.Where("id IN ?", ids).Find(&properties).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	// Preserve favorite order, not property order
	ordered := make([]models.Property, 0, len(favorites))
	for _, fav := range favorites {
		if p, ok := byID[fav.PropertyID]; ok {
			ordered = append(ordered, p)
		}
	}

	return gdb.summarize(ordered)
}

// CountFavorites returns the total number of favorite rows.
func (gdb *GormDB) CountFavorites() (int64, error) {
	var count int64
	err := gdb.db.Model(&models.Favorite{}).Count(&count).Error
	return count, err
}
