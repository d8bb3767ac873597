package models

import (
	"time"
)

// Category is a product grouping managed by admins
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
