package models

import "time"

// Inquiry is a contact message submitted against a property. Inquiries
// are created by visitors and only ever mutated by the admin read toggle.
type Inquiry struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:varchar(254);not null" json:"email"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Inquiry) TableName() string {
	return "inquiries"
}
