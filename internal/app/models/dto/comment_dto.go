package dto

import (
	"time"

	"github.com/avelichko/postline/internal/app/models"
)

// CreateCommentRequest represents comment submission data. Text is bound
// without a required tag: blank submissions are dropped silently by the
// service rather than rejected with a 400.
type CreateCommentRequest struct {
	Text string `json:"text" form:"text"`
}

// CommentResponse represents one comment on a post
type CommentResponse struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"postId"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromComment converts a models.Comment to a CommentResponse
func FromComment(comment *models.Comment) CommentResponse {
	if comment == nil {
		return CommentResponse{}
	}

	resp := CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.AuthorUsername = comment.Author.Username
	}
	return resp
}
