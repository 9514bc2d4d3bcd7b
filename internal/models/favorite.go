package models

import "time"

// Favorite marks a property as favorited by an anonymous session.
// The (user_session, property_id) pair is unique at the storage layer so
// concurrent toggles cannot insert duplicates.
type Favorite struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserSession string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_favorites_session_property" json:"-"`
	PropertyID  uint      `gorm:"not null;uniqueIndex:idx_favorites_session_property;index" json:"property_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}
