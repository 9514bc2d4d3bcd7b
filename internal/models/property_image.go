package models

import "time"

// PropertyImage represents an image associated with a property.
// At most one image per property carries IsPrimary = true; the database
// layer clears sibling flags whenever a primary image is written.
type PropertyImage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	ImageURL   string    `gorm:"type:text;not null" json:"image_url"`
	IsPrimary  bool      `gorm:"not null;default:false;index" json:"is_primary"`
	Caption    string    `gorm:"type:varchar(200)" json:"caption"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}
