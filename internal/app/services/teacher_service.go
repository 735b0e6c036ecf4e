package services

import (
	"context"
	"fmt"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
)

// TeacherStore persists teachers
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	List(ctx context.Context, filter repositories.TeacherFilter, offset, limit int) ([]*models.Teacher, int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	AssignClasses(ctx context.Context, teacherID int64, classIDs []int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// TeacherListResponse is a paginated teacher listing
type TeacherListResponse struct {
	Teachers   []*models.Teacher  `json:"teachers"`
	Pagination dto.PaginationInfo `json:"pagination"`
}

// TeacherService handles teacher directory operations
type TeacherService struct {
	teachers TeacherStore
	classes  ClassStore
	activity *ActivityService
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teachers TeacherStore, classes ClassStore, activity *ActivityService) *TeacherService {
	return &TeacherService{
		teachers: teachers,
		classes:  classes,
		activity: activity,
	}
}

// CreateTeacher registers a new teacher
func (s *TeacherService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := &models.Teacher{
		Name:       req.Name,
		Subject:    req.Subject,
		Contact:    req.Contact,
		Email:      req.Email,
		Gender:     req.Gender,
		HireDate:   req.HireDate,
		Degree:     req.Degree,
		Address:    req.Address,
		BaseSalary: req.BaseSalary,
	}
	if req.ExperienceYears != nil {
		teacher.ExperienceYears = *req.ExperienceYears
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "teacher", fmt.Sprintf("Teacher %s registered for %s", teacher.Name, teacher.Subject))
	return teacher, nil
}

// GetTeacher retrieves one teacher with class assignments populated
func (s *TeacherService) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// ListTeachers lists teachers matching the filter, with pagination
func (s *TeacherService) ListTeachers(ctx context.Context, filter repositories.TeacherFilter, page, size int) (*TeacherListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	teachers, total, err := s.teachers.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	return &TeacherListResponse{
		Teachers:   teachers,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateTeacher merges the given fields into an existing teacher
func (s *TeacherService) UpdateTeacher(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}
	if req.Contact != nil {
		teacher.Contact = *req.Contact
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.HireDate != nil {
		teacher.HireDate = *req.HireDate
	}
	if req.Degree != nil {
		teacher.Degree = *req.Degree
	}
	if req.ExperienceYears != nil {
		teacher.ExperienceYears = *req.ExperienceYears
	}
	if req.Address != nil {
		teacher.Address = *req.Address
	}
	if req.BaseSalary != nil {
		teacher.BaseSalary = *req.BaseSalary
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}

	return s.teachers.GetByID(ctx, id)
}

// AssignClasses replaces a teacher's class assignments. Every class in the
// set must exist.
func (s *TeacherService) AssignClasses(ctx context.Context, teacherID int64, classIDs []int64) (*models.Teacher, error) {
	if _, err := s.teachers.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}

	for _, classID := range classIDs {
		if _, err := s.classes.GetByID(ctx, classID); err != nil {
			return nil, err
		}
	}

	if err := s.teachers.AssignClasses(ctx, teacherID, classIDs); err != nil {
		return nil, err
	}

	return s.teachers.GetByID(ctx, teacherID)
}

// DeleteTeacher removes a teacher and, through the schema, their salary
// payments and class assignments
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teachers.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, "teacher", fmt.Sprintf("Teacher %s removed", teacher.Name))
	return nil
}
