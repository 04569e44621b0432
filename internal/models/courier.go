package models

import (
	"time"
)

// Courier delivery courier table
type Courier struct {
	ID          uint      `gorm:"primarykey" json:"id"`                  // primary key
	Name        string    `gorm:"not null;index" json:"name"`            // courier name
	Phone       string    `gorm:"not null" json:"phone"`                 // contact phone
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"` // available for assignment
	CreatedAt   time.Time `gorm:"index" json:"created_at"`               // creation time
	UpdatedAt   time.Time `json:"updated_at"`                            // last update time
}

// TableName sets the table name
func (Courier) TableName() string {
	return "couriers"
}
