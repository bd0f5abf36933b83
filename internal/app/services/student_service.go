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

// StudentService handles student roster operations
type StudentService struct {
	studentRepo *repositories.StudentRepository
	classRepo   *repositories.ClassRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, classRepo *repositories.ClassRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
	}
}

func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewBadRequestError("student is nil")
	}
	if strings.TrimSpace(student.Name) == "" {
		return apperrors.NewBadRequestError("student name cannot be empty")
	}
	if student.Grade < 0 {
		return apperrors.NewBadRequestError("student grade cannot be negative")
	}
	if student.ClassID <= 0 {
		return apperrors.NewBadRequestError("student must belong to a class")
	}
	return nil
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}

	if _, err := s.classRepo.GetByID(ctx, student.ClassID); err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return apperrors.ErrClassNotFound
		}
		return fmt.Errorf("error checking class: %w", err)
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetStudentByID retrieves a student by ID with class details
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid student ID")
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	class, err := s.classRepo.GetByID(ctx, student.ClassID)
	if err == nil {
		student.Class = class
	}

	return student, nil
}

// ListStudents retrieves students filtered by class and/or active flag
func (s *StudentService) ListStudents(ctx context.Context, classID *int64, active *bool) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx, classID, active)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	if student.ID <= 0 {
		return apperrors.NewBadRequestError("invalid student ID")
	}

	if _, err := s.classRepo.GetByID(ctx, student.ClassID); err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return apperrors.ErrClassNotFound
		}
		return fmt.Errorf("error checking class: %w", err)
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	return nil
}

// DeactivateStudent marks a student inactive, keeping the record for history
func (s *StudentService) DeactivateStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid student ID")
	}

	if err := s.studentRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error deactivating student: %w", err)
	}
	return nil
}
