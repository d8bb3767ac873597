package models

import (
	"fmt"
	"time"
)

// Address is a user's shipping address
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Venue     string    `gorm:"not null" json:"venue"`
	Place     string    `gorm:"not null" json:"place"`
	Landmark  string    `json:"landmark,omitempty"`
	City      string    `gorm:"not null" json:"city"`
	District  string    `gorm:"not null" json:"district"`
	State     string    `gorm:"not null" json:"state"`
	Pincode   string    `gorm:"not null" json:"pincode"` // 6 digits
	Phone     string    `gorm:"not null" json:"phone"`   // 10 digits
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}

// Formatted renders the address as the single line stored on orders
func (a *Address) Formatted() string {
	s := fmt.Sprintf("%s, %s", a.Venue, a.Place)
	if a.Landmark != "" {
		s += ", " + a.Landmark
	}
	return fmt.Sprintf("%s, %s, %s, %s - %s, Phone: %s", s, a.City, a.District, a.State, a.Pincode, a.Phone)
}
