package domain

import "time"

// Session is the server-side record of a login, kept while the token is valid.
type Session struct {
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	Token      string    `json:"token"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
