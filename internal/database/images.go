package database

import (
	"errors"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/gorm"
)

// UpsertImage creates or updates a property image. When the image is
// marked primary, sibling primary flags are cleared in the same
// transaction so the single-primary invariant holds at every point.
func (gdb *GormDB) UpsertImage(propertyID uint, img *models.PropertyImage) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		exists, err := gdb.propertyExists(tx, propertyID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		img.PropertyID = propertyID

		if img.IsPrimary {
			if err := clearPrimaryFlags(tx, propertyID, img.ID); err != nil {
				return err
			}
		}

		if img.ID == 0 {
			return tx.Create(img).Error
		}
		return tx.Save(img).Error
	})
}

// SetPrimaryImage designates one image of a property as primary,
// clearing every other image of the property atomically.
func (gdb *GormDB) SetPrimaryImage(propertyID, imageID uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var img models.PropertyImage
		err := tx.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := clearPrimaryFlags(tx, propertyID, imageID); err != nil {
			return err
		}

		return tx.Model(&models.PropertyImage{}).
			Where("id = ?", imageID).
			Update("is_primary", true).Error
	})
}

// clearPrimaryFlags unsets is_primary on all images of the property
// except the one being written.
func clearPrimaryFlags(tx *gorm.DB, propertyID, keepID uint) error {
	query := tx.Model(&models.PropertyImage{}).
		Where("property_id = ? AND is_primary = ?", propertyID, true)
	if keepID != 0 {
		query = query.Where("id <> ?", keepID)
	}
	return query.Update("is_primary", false).Error
}

// ResolvePrimary returns the primary image reference of a property, or
// nil when none is designated. Read-only.
func (gdb *GormDB) ResolvePrimary(propertyID uint) (*string, error) {
	var img models.PropertyImage
	err := gdb.db.Where("property_id = ? AND is_primary = ?", propertyID, true).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img.ImageURL, nil
}

// primaryImagesFor resolves primary image references for a batch of
// properties in one query. Properties without a primary image are
// simply absent from the map.
func (gdb *GormDB) primaryImagesFor(propertyIDs []uint) (map[uint]string, error) {
	var images []models.PropertyImage
	err := gdb.db.
		Where("property_id IN ? AND is_primary = ?", propertyIDs, true).
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	primaries := make(map[uint]string, len(images))
	for _, img := range images {
		primaries[img.PropertyID] = img.ImageURL
	}
	return primaries, nil
}

// GetPropertyImages returns all images of a property in display order:
// primary first, then oldest first.
func (gdb *GormDB) GetPropertyImages(propertyID uint) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := gdb.db.
		Where("property_id = ?", propertyID).
		Order("is_primary DESC, created_at ASC").
		Find(&images).Error
	return images, err
}

// DeleteImage removes a single image.
func (gdb *GormDB) DeleteImage(imageID uint) error {
	result := gdb.db.Delete(&models.PropertyImage{}, imageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
