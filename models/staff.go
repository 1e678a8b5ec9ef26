package models

import "time"

type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	ContactInfo  string    `gorm:"type:varchar(255);unique;not null" json:"contact_info"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}

// AccessRole maps the job title to an access level. Managers get admin
// privileges, everyone else is staff.
func (s *Staff) AccessRole() string {
	if s.Role == "Manager" {
		return "admin"
	}
	return "staff"
}
