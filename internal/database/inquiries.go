package database

import (
	"github.com/Tonkata28/imotiko-website/internal/models"

	"gorm.io/gorm"
)

// CreateInquiry persists a visitor inquiry against an existing
// property. Unknown property ids return ErrNotFound instead of
// orphaning the record.
func (gdb *GormDB) CreateInquiry(inquiry *models.Inquiry) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		exists, err := gdb.propertyExists(tx, inquiry.PropertyID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return tx.Create(inquiry).Error
	})
}

// ListInquiries returns a page of inquiries, newest first, optionally
// filtered by read state (admin read path).
func (gdb *GormDB) ListInquiries(isRead *bool, page, limit int) ([]models.Inquiry, int64, error) {
	query := gdb.db.Model(&models.Inquiry{})
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	var inquiries []models.Inquiry
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&inquiries).Error
	return inquiries, total, err
}

// MarkInquiryRead flags an inquiry as handled.
func (gdb *GormDB) MarkInquiryRead(id uint) error {
	result := gdb.db.Model(&models.Inquiry{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnreadInquiries returns the number of unhandled inquiries.
func (gdb *GormDB) CountUnreadInquiries() (int64, error) {
	var count int64
	err := gdb.db.Model(&models.Inquiry{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
