package models

// Group represents a named category posts can optionally belong to
type Group struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"` // globally unique
	Description string `json:"description" db:"description"`
}
