package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository    *AdminRepository
	ClassRepository    *ClassRepository
	StudentRepository  *StudentRepository
	TeacherRepository  *TeacherRepository
	FeeRepository      *FeeRepository
	SalaryRepository   *SalaryRepository
	ActivityRepository *ActivityRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:    NewAdminRepository(db),
		ClassRepository:    NewClassRepository(db),
		StudentRepository:  NewStudentRepository(db),
		TeacherRepository:  NewTeacherRepository(db),
		FeeRepository:      NewFeeRepository(db),
		SalaryRepository:   NewSalaryRepository(db),
		ActivityRepository: NewActivityRepository(db),
	}
}
