package dto

// CreateClassRequest creates a new class
type CreateClassRequest struct {
	Name string `json:"name" binding:"required" example:"Grade 5"`
}

// UpdateClassRequest renames a class
type UpdateClassRequest struct {
	Name string `json:"name" binding:"required" example:"Grade 6"`
}
