package models

import (
	"time"
)

// MessageTemplate per-user notification message template table
type MessageTemplate struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                              // primary key
	UserID       uint      `gorm:"not null;uniqueIndex:idx_templates_user_type" json:"user_id"`       // owning account
	TemplateType string    `gorm:"not null;uniqueIndex:idx_templates_user_type" json:"template_type"` // audience type
	Body         string    `gorm:"not null" json:"body"`                                              // text with {placeholder} variables
	CreatedAt    time.Time `json:"created_at"`                                                        // creation time
	UpdatedAt    time.Time `json:"updated_at"`                                                        // last update time
}

// TableName sets the table name
func (MessageTemplate) TableName() string {
	return "message_templates"
}
