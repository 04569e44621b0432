package models

import (
	"time"
)

// User login credential table (admins and couriers)
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                 // primary key
	Username           string     `gorm:"uniqueIndex;not null" json:"username"` // login name
	PasswordHash       string     `gorm:"not null" json:"-"`                    // bcrypt hash, never rendered
	Role               string     `gorm:"not null;index" json:"role"`           // admin / courier
	CourierID          *uint      `gorm:"index" json:"courier_id"`              // owning courier for courier accounts
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`          // bump to revoke all issued tokens
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                       // tokens issued before this are rejected
	LastLoginAt        *time.Time `json:"last_login_at"`                        // last successful login
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`              // creation time
	UpdatedAt          time.Time  `json:"updated_at"`                           // last update time
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the account has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
