package models

import "time"

// RefreshToken backs the JWT refresh flow; tokens are opaque UUIDs
// tracked server-side so they can be revoked.
type RefreshToken struct {
	ID         int64     `json:"id" db:"id"`
	Token      string    `json:"token" db:"token"`
	UserID     int64     `json:"userId" db:"user_id"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	IsRevoked  bool      `json:"isRevoked" db:"is_revoked"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
