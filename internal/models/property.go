package models

import "time"

type Property struct {
	// 基本情報
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string          `gorm:"type:varchar(200);not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	PropertyType    PropertyType    `gorm:"type:varchar(20);not null;index" json:"property_type"`
	TransactionType TransactionType `gorm:"type:varchar(10);not null;index" json:"transaction_type"`

	// 価格・面積
	Price float64 `gorm:"type:decimal(12,2);not null;index" json:"price"`
	Area  float64 `gorm:"type:decimal(8,2);not null" json:"area"`

	// 物件詳細
	Bedrooms  int  `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms int  `gorm:"not null;default:1" json:"bathrooms"`
	Floor     *int `gorm:"type:int" json:"floor,omitempty"`
	YearBuilt *int `gorm:"type:int" json:"year_built,omitempty"`

	// 所在地
	Address    string   `gorm:"type:varchar(255);not null" json:"address"`
	City       string   `gorm:"type:varchar(100);not null;index" json:"city"`
	PostalCode string   `gorm:"type:varchar(10)" json:"postal_code"`
	Latitude   *float64 `gorm:"type:decimal(9,6)" json:"latitude,omitempty"`
	Longitude  *float64 `gorm:"type:decimal(9,6)" json:"longitude,omitempty"`

	// 掲載者の連絡先
	ContactPhone string `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	ContactEmail string `gorm:"type:varchar(254)" json:"contact_email,omitempty"`

	// ステータス
	IsFeatured  bool `gorm:"not null;default:false;index" json:"is_featured"`
	IsAvailable bool `gorm:"not null;default:true;index" json:"is_available"`
	ViewsCount  uint `gorm:"not null;default:0" json:"views_count"`

	// タイムスタンプ
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// PropertyType は物件の種別
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeStudio     PropertyType = "studio"
	PropertyTypeOffice     PropertyType = "office"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeLand       PropertyType = "land"
)

// TransactionType は取引の種別
type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
)

// TableName はテーブル名を明示的に指定
func (Property) TableName() string {
	return "properties"
}

// ValidPropertyType reports whether t is one of the known property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStudio,
		PropertyTypeOffice, PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

// ValidTransactionType reports whether t is sale or rent.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionSale || t == TransactionRent
}

// PropertySummary is the reduced shape used for listing responses.
// primary_image is null when the property has no primary image.
type PropertySummary struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	PropertyType    PropertyType    `json:"property_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Price           float64         `json:"price"`
	Area            float64         `json:"area"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	IsFeatured      bool            `json:"is_featured"`
	PrimaryImage    *string         `json:"primary_image"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Summary projects the property into its listing shape. The primary image
// reference is resolved by the caller.
func (p *Property) Summary(primaryImage *string) PropertySummary {
	return PropertySummary{
		ID:              p.ID,
		Title:           p.Title,
		PropertyType:    p.PropertyType,
		TransactionType: p.TransactionType,
		Price:           p.Price,
		Area:            p.Area,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Address:         p.Address,
		City:            p.City,
		IsFeatured:      p.IsFeatured,
		PrimaryImage:    primaryImage,
		CreatedAt:       p.CreatedAt,
	}
}
