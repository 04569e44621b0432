package service

import "github.com/mediantar/mediantar/internal/constants"

// Principal the authenticated account acting on a request. Threaded as an
// explicit parameter; services never read auth state from ambient context.
type Principal struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CourierID uint   `json:"courier_id"` // 0 for admin accounts
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == constants.RoleAdmin
}

// IsCourier reports whether the principal holds the courier role
func (p Principal) IsCourier() bool {
	return p.Role == constants.RoleCourier
}
