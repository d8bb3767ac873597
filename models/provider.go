package models

import (
	"time"
)

// Provider is a rental company offering products at one or more locations
type Provider struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null;index" json:"name"`
	Company   string     `gorm:"not null" json:"company"`
	Contact   string     `gorm:"not null" json:"contact"` // digits only, validated at the handler
	Locations []Location `gorm:"many2many:provider_locations" json:"locations"`
	IsActive  bool       `gorm:"not null;default:true" json:"isActive"`
	IsDeleted bool       `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for the Provider model
func (Provider) TableName() string {
	return "providers"
}
