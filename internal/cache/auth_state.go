package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mediantar/mediantar/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AuthState server-side account snapshot used by the JWT middleware.
// TokenInvalidBefore is a Unix second timestamp, 0 when unset.
type AuthState struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	CourierID          uint   `json:"courier_id"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func authStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildAuthState builds a snapshot from a credential row
func BuildAuthState(user *models.User) *AuthState {
	if user == nil {
		return nil
	}
	state := &AuthState{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.CourierID != nil {
		state.CourierID = *user.CourierID
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetAuthState reads an account snapshot
func GetAuthState(ctx context.Context, userID uint) (*AuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state AuthState
	hit, err := GetJSON(ctx, authStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAuthState writes an account snapshot
func SetAuthState(ctx context.Context, state *AuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.UserID), state, authStateCacheTTL)
}

// DelAuthState drops an account snapshot, forcing a database reload
func DelAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, authStateKey(userID))
}
