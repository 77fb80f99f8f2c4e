package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"leo_author"`
	Email     string    `json:"email" db:"email" example:"leo@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name" example:"Leo"`
	LastName  string    `json:"lastName" db:"last_name" example:"Tolstoy"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
