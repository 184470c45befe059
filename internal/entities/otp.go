package entities

import "time"

// OTP is a one-time numeric code for password resets. A code is usable only
// while IsActive and before ExpiredAt; consuming it clears IsActive.
type OTP struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	ExpiredAt time.Time `json:"expired_at"`
}
