package models

import (
	"time"
)

// Delivery delivery order table
type Delivery struct {
	ID           uint       `gorm:"primarykey" json:"id"`                    // primary key
	OrderNo      string     `gorm:"uniqueIndex;not null" json:"order_no"`    // display order number
	CustomerID   uint       `gorm:"not null;index" json:"customer_id"`       // target customer, immutable
	CourierID    *uint      `gorm:"index" json:"courier_id"`                 // assigned courier, nil while unassigned
	Status       string     `gorm:"not null;index;default:'pending'" json:"status"` // pending / on_delivery / completed
	DeliveryDate time.Time  `gorm:"index" json:"delivery_date"`              // scheduled delivery date
	Notes        string     `gorm:"default:''" json:"notes"`                 // free-form notes
	AssignedAt   *time.Time `json:"assigned_at"`                             // when a courier was assigned
	CompletedAt  *time.Time `json:"completed_at"`                            // when the delivery completed
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                 // creation time, immutable
	UpdatedAt    time.Time  `json:"updated_at"`                              // last update time

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // preloaded customer
	Courier  *Courier  `gorm:"foreignKey:CourierID" json:"courier,omitempty"`   // preloaded courier
}

// TableName sets the table name
func (Delivery) TableName() string {
	return "deliveries"
}

// IsActive reports whether the delivery still occupies its customer
func (d *Delivery) IsActive() bool {
	return d.Status == "pending" || d.Status == "on_delivery"
}
