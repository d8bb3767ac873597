package models

import (
	"time"
)

// Order statuses. Orders leave PENDING exactly once.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusCompleted = "COMPLETED"
)

// Order is a checkout snapshot of a cart. Lines copy product name and
// price at submission time so later catalog edits don't rewrite history.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"userId"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID" json:"productIds"`
	ProviderIDs []uint      `gorm:"serializer:json" json:"providerIds"` // deduplicated
	Amount      float64     `gorm:"not null" json:"amount"`
	Address     string      `gorm:"not null" json:"address"` // formatted shipping address
	Status      string      `gorm:"not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one rented product within an order
type OrderLine struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	OrderID       uint     `gorm:"not null;index" json:"-"`
	ProductID     uint     `gorm:"not null" json:"productId"`
	ProductName   string   `gorm:"not null" json:"productName"`
	PricePerDay   float64  `gorm:"not null" json:"pricePerDay"`
	SelectedDates []string `gorm:"serializer:json" json:"selectedDates"`
	LocationID    uint     `gorm:"not null" json:"locationId"`
	LocationName  string   `gorm:"not null" json:"locationName"`
	ProviderID    uint     `gorm:"not null" json:"providerId"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// LineTotal returns price per day times the number of selected days
func (l *OrderLine) LineTotal() float64 {
	return l.PricePerDay * float64(len(l.SelectedDates))
}
