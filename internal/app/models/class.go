package models

// Class defines a school class based on the 'classes' table. Membership is the
// class_id column on students; StudentCount is populated by list queries.
type Class struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Name         string `json:"name" db:"name" example:"Grade 5"`
	StudentCount int    `json:"studentCount" example:"24"`
}
