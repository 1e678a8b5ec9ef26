package models

import "time"

// Order lifecycle states. Closed means payment has been captured.
const (
	OrderOpen   = "Open"
	OrderClosed = "Closed"
)

type SalesOrder struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	Customer      Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	StaffID       *uint       `gorm:"index" json:"staff_id,omitempty"`
	Staff         *Staff      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	OrderDateTime time.Time   `gorm:"not null" json:"order_date_time"`
	Status        string      `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

// Total sums the line items at their captured prices. The total is always
// derived, never stored.
func (o *SalesOrder) Total() float64 {
	var total float64
	for _, item := range o.OrderItems {
		total += item.Subtotal()
	}
	return total
}
