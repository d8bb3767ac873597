package models

import (
	"time"
)

// Product is a rentable item, priced per day and bookable on the
// provider's advertised calendar dates
type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null;index" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CategoryID     uint      `gorm:"not null;index" json:"categoryId"`
	Category       Category  `gorm:"foreignKey:CategoryID" json:"category"`
	ProviderID     uint      `gorm:"not null;index" json:"providerId"`
	Provider       Provider  `gorm:"foreignKey:ProviderID" json:"provider"`
	Images         []string  `gorm:"serializer:json" json:"images"`
	Price          float64   `gorm:"not null;check:price > 0" json:"price"` // per day
	DatesAvailable []string  `gorm:"serializer:json" json:"datesAvailable"` // "2006-01-02" strings
	IsActive       bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted      bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
