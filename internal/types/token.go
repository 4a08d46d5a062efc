package types

import "github.com/google/uuid"

// TokenClaims is the application payload carried in a signed JWT.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}
