package dto

import "github.com/avelichko/postline/internal/app/models"

// CreateGroupRequest represents group creation data
type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"required,max=100,lowercase"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// GroupResponse represents one group
type GroupResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// GroupListResponse represents a paginated group directory
type GroupListResponse struct {
	Groups     []GroupResponse `json:"groups"`
	Pagination PaginationInfo  `json:"pagination"`
}

// FromGroup converts a models.Group to a GroupResponse
func FromGroup(group *models.Group) GroupResponse {
	if group == nil {
		return GroupResponse{}
	}
	return GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}
