package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order  SalesOrder `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID uint       `gorm:"not null" json:"item_id"`
	Item   MenuItem   `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"item,omitempty"`
	// UnitPriceAtOrder is the menu price captured when the line was created.
	// It never changes, even when the catalog price does.
	Quantity         int       `gorm:"not null" json:"quantity"`
	UnitPriceAtOrder float64   `gorm:"type:decimal(10,2);not null" json:"unit_price_at_order"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (oi *OrderItem) Subtotal() float64 {
	return float64(oi.Quantity) * oi.UnitPriceAtOrder
}
