package models

import "time"

// Reservation lifecycle states.
const (
	ReservationBooked    = "Booked"
	ReservationSeated    = "Seated"
	ReservationCompleted = "Completed"
	ReservationCancelled = "Cancelled"
	ReservationNoShow    = "NoShow"
)

// Reservation books one table for a half-open window [StartDateTime,
// EndDateTime). Booked reservations on the same table must not overlap.
type Reservation struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	Customer      Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableID       uint        `gorm:"not null;index" json:"table_id"`
	Table         DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"`
	StartDateTime time.Time   `gorm:"not null" json:"start_date_time"`
	EndDateTime   time.Time   `gorm:"not null" json:"end_date_time"`
	PartySize     int         `gorm:"not null" json:"party_size"`
	Notes         string      `gorm:"type:text" json:"notes"`
	Status        string      `gorm:"type:varchar(20);not null;default:'Booked'" json:"status"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

// ValidReservationStatus reports whether s is a known lifecycle state.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationBooked, ReservationSeated, ReservationCompleted,
		ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}
