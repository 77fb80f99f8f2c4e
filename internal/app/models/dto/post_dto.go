package dto

import (
	"time"

	"github.com/avelichko/postline/internal/app/models"
)

// --- Request DTOs ---

// CreatePostRequest represents post creation data. The image file is
// handled separately in the multipart form.
type CreatePostRequest struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *int64 `json:"groupId" form:"groupId" binding:"omitempty,gt=0"`
}

// UpdatePostRequest represents post edit data
type UpdatePostRequest struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *int64 `json:"groupId" form:"groupId" binding:"omitempty,gt=0"`
}

// PostFilterRequest represents post listing filter parameters
type PostFilterRequest struct {
	AuthorID *int64
	GroupID  *int64
	Page     int
	PageSize int
}

// --- Response DTOs ---

// PostResponse represents one post in listings and detail views
type PostResponse struct {
	ID             int64     `json:"id"`
	Text           string    `json:"text"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	GroupID        *int64    `json:"groupId,omitempty"`
	GroupSlug      *string   `json:"groupSlug,omitempty"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// PostDetailResponse is the post detail view: the post plus its comments.
type PostDetailResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
}

// FromPost converts a models.Post to a PostResponse
func FromPost(post *models.Post) PostResponse {
	if post == nil {
		return PostResponse{}
	}

	resp := PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		AuthorID:  post.AuthorID,
		GroupID:   post.GroupID,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
	}

	if post.Author != nil {
		resp.AuthorUsername = post.Author.Username
	}
	if post.Group != nil {
		slug := post.Group.Slug
		resp.GroupSlug = &slug
	}

	return resp
}
