package models

import (
	"math"
	"time"
)

// TaxRate is the fixed sales tax applied to the order subtotal.
const TaxRate = 0.07

// Order statuses. Transitions are unordered: an admin may set any of
// the four values at any time.
const (
	StatusNew       = "new"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

type Order struct {
	ID                  uint        `gorm:"primaryKey" json:"id"`
	UserID              uint        `gorm:"not null;index" json:"user_id"`
	User                User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerName        string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone       string      `gorm:"type:varchar(50);not null" json:"customer_phone"`
	OrderType           string      `gorm:"type:varchar(20);not null" json:"order_type"`
	SpecialInstructions string      `gorm:"type:text" json:"special_instructions,omitempty"`
	Status              string      `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Subtotal            float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax                 float64     `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total               float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt           time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems          []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

// ValidStatus reports whether s is one of the four order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// CalcTotals computes subtotal, tax and total for a set of line items,
// rounded to cents.
func CalcTotals(items []OrderItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * TaxRate)
	total = round2(subtotal + tax)
	return subtotal, tax, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
