package models

import "time"

// PaymentCaptured means funds are secured and the order is settled.
const PaymentCaptured = "Captured"

// Payment records a captured payment for exactly one order. The unique index
// on OrderID backs the at-most-one-payment-per-order invariant.
type Payment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	OrderID         uint       `json:"order_id" gorm:"uniqueIndex;not null"`
	Order           SalesOrder `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Amount          float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod   string     `json:"payment_method" gorm:"type:varchar(30);not null"`
	PaymentDateTime time.Time  `json:"payment_date_time" gorm:"not null"`
	Status          string     `json:"status" gorm:"type:varchar(20);not null;default:'Captured'"`
	ReferenceID     string     `json:"reference_id" gorm:"type:varchar(64)"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
