package services

import (
	"context"
	"fmt"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
)

// StudentStore persists students
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter repositories.StudentFilter, offset, limit int) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// StudentService handles student directory operations
type StudentService struct {
	students StudentStore
	classes  ClassStore
	activity *ActivityService
}

// NewStudentService creates a new student service
func NewStudentService(students StudentStore, classes ClassStore, activity *ActivityService) *StudentService {
	return &StudentService{
		students: students,
		classes:  classes,
		activity: activity,
	}
}

// CreateStudent enrolls a new student into an existing class
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:          req.Name,
		ClassID:       &req.ClassID,
		StudentNo:     req.StudentNo,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		ParentContact: req.ParentContact,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	student.Class = &models.Class{ID: class.ID, Name: class.Name}

	s.activity.Record(ctx, "student", fmt.Sprintf("Student %s enrolled in %s", student.Name, class.Name))
	return student, nil
}

// GetStudent retrieves one student with the class relation populated
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents lists students matching the filter, with owner-level pagination
func (s *StudentService) ListStudents(ctx context.Context, filter repositories.StudentFilter, page, size int) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := s.students.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	return &dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateStudent merges the given fields into an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.ClassID != nil {
		if _, err := s.classes.GetByID(ctx, *req.ClassID); err != nil {
			return nil, err
		}
		student.ClassID = req.ClassID
	}
	if req.StudentNo != nil {
		student.StudentNo = *req.StudentNo
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = *req.DateOfBirth
	}
	if req.ParentContact != nil {
		student.ParentContact = *req.ParentContact
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.students.GetByID(ctx, id)
}

// DeleteStudent removes a student and, through the schema, their fee payments
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, "student", fmt.Sprintf("Student %s removed", student.Name))
	return nil
}
