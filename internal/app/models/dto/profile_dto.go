package dto

import "time"

// ProfileResponse represents an author profile: user info, post count, and
// whether the current viewer follows the author (always false when the
// viewer is anonymous).
type ProfileResponse struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	PostCount int64     `json:"postCount"`
	Following bool      `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}
