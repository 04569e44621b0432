package models

import (
	"time"
)

// Customer delivery customer table
type Customer struct {
	ID          uint      `gorm:"primarykey" json:"id"`                           // primary key
	Name        string    `gorm:"not null;index" json:"name"`                     // customer name
	Phone       string    `gorm:"not null" json:"phone"`                          // contact phone
	Address     string    `gorm:"not null" json:"address"`                        // delivery address
	Lat         *float64  `json:"lat"`                                            // latitude, set together with Lng
	Lng         *float64  `json:"lng"`                                            // longitude, set together with Lat
	DistanceKm  Distance  `gorm:"type:decimal(10,2);default:0" json:"distance_km"` // distance from pharmacy in km
	DeliveryFee int64     `gorm:"not null;default:0" json:"delivery_fee"`         // delivery charge in currency units
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                        // creation time
	UpdatedAt   time.Time `json:"updated_at"`                                     // last update time
}

// TableName sets the table name
func (Customer) TableName() string {
	return "customers"
}

// HasCoordinates reports whether both coordinates are set
func (c *Customer) HasCoordinates() bool {
	return c.Lat != nil && c.Lng != nil
}
