package models

import "time"

// Post is the content unit of the service. CreatedAt is assigned by the
// server on insert and never changes; listings order by it descending.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`   // nullable, SET NULL on group deletion
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"` // nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *User  `json:"author,omitempty"`
	Group  *Group `json:"group,omitempty"`
}
