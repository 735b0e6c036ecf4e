package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
)

// ClassStore persists classes
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// ClassService handles class directory operations
type ClassService struct {
	classes  ClassStore
	activity *ActivityService
}

// NewClassService creates a new class service
func NewClassService(classes ClassStore, activity *ActivityService) *ClassService {
	return &ClassService{
		classes:  classes,
		activity: activity,
	}
}

// CreateClass creates a class with the given name
func (s *ClassService) CreateClass(ctx context.Context, name string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("class name cannot be empty")
	}

	class := &models.Class{Name: name}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "class", fmt.Sprintf("Class %s created", class.Name))
	return class, nil
}

// GetClasses lists all classes with student counts
func (s *ClassService) GetClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classes.GetAll(ctx)
}

// GetClass retrieves one class
func (s *ClassService) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// RenameClass changes a class name
func (s *ClassService) RenameClass(ctx context.Context, id int64, name string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("class name cannot be empty")
	}

	if err := s.classes.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}

	return s.classes.GetByID(ctx, id)
}

// DeleteClass removes a class. Its students stay enrolled without a class.
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, "class", fmt.Sprintf("Class %s deleted", class.Name))
	return nil
}
