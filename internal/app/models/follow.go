package models

import "time"

// Follow is a directed edge meaning the follower receives the author's
// posts in their feed. The pair (follower_id, author_id) is unique.
type Follow struct {
	ID         int64     `json:"id" db:"id"`
	FollowerID int64     `json:"followerId" db:"follower_id"`
	AuthorID   int64     `json:"authorId" db:"author_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
