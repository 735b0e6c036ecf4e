package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Name          string    `json:"name" db:"name" example:"Amina Yusuf"`
	ClassID       *int64    `json:"classId,omitempty" db:"class_id" example:"3"` // Pointer for students without a class
	StudentNo     string    `json:"studentNo" db:"student_no" example:"STU-0042"`
	Gender        string    `json:"gender" db:"gender" example:"Female"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth" example:"2012-09-14T00:00:00Z"`
	ParentContact string    `json:"parentContact" db:"parent_contact" example:"+256700000000"`

	// Relations (populated when needed)
	Class *Class `json:"class,omitempty"`
}

// ClassName returns the name of the student's class, or "N/A" when unassigned.
func (s *Student) ClassName() string {
	if s.Class == nil {
		return "N/A"
	}
	return s.Class.Name
}
