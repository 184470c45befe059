package entities

import "time"

// Token is the revocable record kept for every issued JWT. Once IsRevoked
// flips to true it never reverts.
type Token struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
