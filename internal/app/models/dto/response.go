package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-01-05T09:30:00Z"`
}

// SuccessResponse represents a standard success message
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes the owner-level pagination of a list response.
// Total counts owners (students/teachers), not flattened payment rows.
type PaginationInfo struct {
	Total int64 `json:"total" example:"42"`
	Page  int   `json:"page" example:"1"`
	Pages int   `json:"pages" example:"5"`
}
