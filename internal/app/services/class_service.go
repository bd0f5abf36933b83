package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/app/repositories"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
)

// ClassService handles class roster operations
type ClassService struct {
	classRepo *repositories.ClassRepository
	userRepo  *repositories.UserRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo *repositories.ClassRepository, userRepo *repositories.UserRepository) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		userRepo:  userRepo,
	}
}

// validateClass validates class data before database operations
func (s *ClassService) validateClass(class *models.Class) error {
	if class == nil {
		return apperrors.NewBadRequestError("class is nil")
	}
	if strings.TrimSpace(class.Name) == "" {
		return apperrors.NewBadRequestError("class name cannot be empty")
	}
	if strings.TrimSpace(class.Department) == "" {
		return apperrors.NewBadRequestError("class department cannot be empty")
	}
	if class.Year <= 0 {
		return apperrors.NewBadRequestError("class year must be positive")
	}
	return nil
}

// CreateClass creates a new class
func (s *ClassService) CreateClass(ctx context.Context, class *models.Class) error {
	if err := s.validateClass(class); err != nil {
		return err
	}

	if class.MainTeacherID != nil {
		if _, err := s.userRepo.GetByID(ctx, *class.MainTeacherID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.NewBadRequestError("main teacher does not exist")
			}
			return fmt.Errorf("error checking main teacher: %w", err)
		}
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		if errors.Is(err, repositories.ErrClassAlreadyExists) {
			return apperrors.ErrClassAlreadyExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetClassByID retrieves a class by ID
func (s *ClassService) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid class ID")
	}

	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	if class.MainTeacherID != nil {
		teacher, err := s.userRepo.GetByID(ctx, *class.MainTeacherID)
		if err == nil {
			class.MainTeacher = teacher
		}
	}

	return class, nil
}

// GetClassesByYear retrieves all classes for an academic year
func (s *ClassService) GetClassesByYear(ctx context.Context, year int) ([]*models.Class, error) {
	if year <= 0 {
		return nil, apperrors.NewBadRequestError("invalid year")
	}

	classes, err := s.classRepo.GetByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	return classes, nil
}

// UpdateClass updates an existing class
func (s *ClassService) UpdateClass(ctx context.Context, class *models.Class) error {
	if err := s.validateClass(class); err != nil {
		return err
	}
	if class.ID <= 0 {
		return apperrors.NewBadRequestError("invalid class ID")
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return apperrors.ErrClassNotFound
		}
		if errors.Is(err, repositories.ErrClassAlreadyExists) {
			return apperrors.ErrClassAlreadyExists
		}
		return fmt.Errorf("error updating class: %w", err)
	}
	return nil
}

// DeleteClass deletes a class by ID
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid class ID")
	}

	if err := s.classRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return apperrors.ErrClassNotFound
		}
		if errors.Is(err, repositories.ErrClassHasStudents) {
			return apperrors.ErrClassHasStudents
		}
		return fmt.Errorf("error deleting class: %w", err)
	}
	return nil
}
