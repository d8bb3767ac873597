package models

import (
	"time"
)

// Location is a tag entity shared by providers and used as a cart-line dimension
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
