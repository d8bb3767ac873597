package models

import (
	"time"
)

// Cart is a user's in-progress selection. One cart per user.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"products"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (product, dates, location) selection. The composite
// unique index keeps at most one line per product in a cart.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CartID        uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID     uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`
	Product       Product   `gorm:"foreignKey:ProductID" json:"productId"`
	LocationID    uint      `gorm:"not null" json:"-"`
	Location      Location  `gorm:"foreignKey:LocationID" json:"locationId"`
	SelectedDates []string  `gorm:"serializer:json" json:"selectedDates"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}

// TotalDays returns the number of rental days selected on the line
func (ci *CartItem) TotalDays() int {
	return len(ci.SelectedDates)
}
