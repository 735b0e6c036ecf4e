package dto

import (
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
)

// CreateStudentRequest enrolls a new student
type CreateStudentRequest struct {
	Name          string    `json:"name" binding:"required" example:"Amina Yusuf"`
	ClassID       int64     `json:"classId" binding:"required" example:"3"`
	StudentNo     string    `json:"studentNo" binding:"required" example:"STU-0042"`
	Gender        string    `json:"gender" binding:"required,oneof=Male Female" example:"Female"`
	DateOfBirth   time.Time `json:"dateOfBirth" binding:"required" example:"2012-09-14T00:00:00Z"`
	ParentContact string    `json:"parentContact" binding:"required" example:"+256700000000"`
}

// UpdateStudentRequest partially updates a student; absent fields are kept
type UpdateStudentRequest struct {
	Name          *string    `json:"name,omitempty"`
	ClassID       *int64     `json:"classId,omitempty"`
	StudentNo     *string    `json:"studentNo,omitempty"`
	Gender        *string    `json:"gender,omitempty" binding:"omitempty,oneof=Male Female"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	ParentContact *string    `json:"parentContact,omitempty"`
}

// StudentListResponse is a paginated student listing
type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}
