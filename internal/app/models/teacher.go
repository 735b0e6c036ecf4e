package models

import (
	"time"

	"github.com/kerem/schoolhub/internal/pkg/money"
)

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID              int64        `json:"id" db:"id" example:"1"`
	Name            string       `json:"name" db:"name" example:"Daniel Okello"`
	Subject         string       `json:"subject" db:"subject" example:"Mathematics"`
	Contact         string       `json:"contact" db:"contact" example:"+256700000001"`
	Email           string       `json:"email" db:"email" example:"d.okello@school.example"`
	Gender          string       `json:"gender" db:"gender" example:"Male"`
	HireDate        time.Time    `json:"hireDate" db:"hire_date" example:"2019-02-01T00:00:00Z"`
	Degree          string       `json:"degree" db:"degree" example:"BSc Education"`
	ExperienceYears int          `json:"experienceYears" db:"experience_years" example:"7"`
	Address         string       `json:"address" db:"address" example:"Kampala"`
	BaseSalary      money.Amount `json:"baseSalary" db:"base_salary_cents" example:"8500"`

	// Relations (populated when needed)
	ClassIDs []int64  `json:"classIds,omitempty"`
	Classes  []*Class `json:"classes,omitempty"`
}
