package dto

import (
	"time"

	"github.com/kerem/schoolhub/internal/pkg/money"
)

// CreateTeacherRequest registers a new teacher
type CreateTeacherRequest struct {
	Name            string       `json:"name" binding:"required" example:"Daniel Okello"`
	Subject         string       `json:"subject" binding:"required" example:"Mathematics"`
	Contact         string       `json:"contact" example:"+256700000001"`
	Email           string       `json:"email" binding:"required,email" example:"d.okello@school.example"`
	Gender          string       `json:"gender" binding:"required,oneof=Male Female" example:"Male"`
	HireDate        time.Time    `json:"hireDate" binding:"required" example:"2019-02-01T00:00:00Z"`
	Degree          string       `json:"degree" binding:"required" example:"BSc Education"`
	ExperienceYears *int         `json:"experienceYears" binding:"required" example:"7"`
	Address         string       `json:"address" example:"Kampala"`
	BaseSalary      money.Amount `json:"baseSalary" example:"8500"`
}

// UpdateTeacherRequest partially updates a teacher; absent fields are kept
type UpdateTeacherRequest struct {
	Name            *string       `json:"name,omitempty"`
	Subject         *string       `json:"subject,omitempty"`
	Contact         *string       `json:"contact,omitempty"`
	Email           *string       `json:"email,omitempty" binding:"omitempty,email"`
	Gender          *string       `json:"gender,omitempty" binding:"omitempty,oneof=Male Female"`
	HireDate        *time.Time    `json:"hireDate,omitempty"`
	Degree          *string       `json:"degree,omitempty"`
	ExperienceYears *int          `json:"experienceYears,omitempty"`
	Address         *string       `json:"address,omitempty"`
	BaseSalary      *money.Amount `json:"baseSalary,omitempty"`
}

// AssignClassesRequest replaces a teacher's class assignments
type AssignClassesRequest struct {
	ClassIDs []int64 `json:"classIds" binding:"required"`
}
