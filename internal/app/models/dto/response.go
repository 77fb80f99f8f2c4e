package dto

import "time"

// APIResponse is the envelope for every endpoint response.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a standard success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// HasNext reports whether a page exists after the current one.
func (p PaginationInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// HasPrevious reports whether a page exists before the current one.
func (p PaginationInfo) HasPrevious() bool {
	return p.CurrentPage > 1
}
