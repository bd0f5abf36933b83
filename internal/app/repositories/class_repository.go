package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/pkg/dberrors"
)

// Class error types
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassAlreadyExists = errors.New("class with this department, name and year already exists")
	ErrClassHasStudents   = errors.New("class has students and cannot be deleted")
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create creates a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (name, department, year, main_teacher_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		class.Name, class.Department, class.Year, class.MainTeacherID, class.IsActive,
	).Scan(&class.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_department_name_year_key") {
			return ErrClassAlreadyExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `
		SELECT id, name, department, year, main_teacher_id, is_active
		FROM classes
		WHERE id = $1
	`

	var class models.Class
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Department,
		&class.Year,
		&class.MainTeacherID,
		&class.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// GetByYear retrieves all classes for an academic year
func (r *ClassRepository) GetByYear(ctx context.Context, year int) ([]*models.Class, error) {
	query := `
		SELECT id, name, department, year, main_teacher_id, is_active
		FROM classes
		WHERE year = $1
		ORDER BY department, name
	`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Department,
			&class.Year,
			&class.MainTeacherID,
			&class.IsActive,
		); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// CountByYear returns the number of classes for an academic year
func (r *ClassRepository) CountByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes WHERE year = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return count, nil
}

// GetByDepartmentNameYear retrieves the class matching (department, name, year),
// or ErrClassNotFound when no such class exists.
func (r *ClassRepository) GetByDepartmentNameYear(ctx context.Context, department, name string, year int) (*models.Class, error) {
	query := `
		SELECT id, name, department, year, main_teacher_id, is_active
		FROM classes
		WHERE department = $1 AND name = $2 AND year = $3
	`

	var class models.Class
	err := r.db.QueryRow(ctx, query, department, name, year).Scan(
		&class.ID,
		&class.Name,
		&class.Department,
		&class.Year,
		&class.MainTeacherID,
		&class.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// Update updates an existing class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET name = $1, department = $2, main_teacher_id = $3, is_active = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		class.Name, class.Department, class.MainTeacherID, class.IsActive, class.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_department_name_year_key") {
			return ErrClassAlreadyExists
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrClassNotFound
	}

	return nil
}

// Delete deletes a class by ID
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	var hasStudents bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE class_id = $1)`,
		id).Scan(&hasStudents)
	if err != nil {
		return fmt.Errorf("error checking class students: %w", err)
	}

	if hasStudents {
		return ErrClassHasStudents
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrClassNotFound
	}

	return nil
}

// DeleteByYearTx deletes every class for an academic year within a transaction
// and returns the number of deleted rows.
func (r *ClassRepository) DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM classes WHERE year = $1`, year)
	if err != nil {
		return 0, fmt.Errorf("error deleting classes for year %d: %w", year, err)
	}
	return cmdTag.RowsAffected(), nil
}

// SetActiveByYearTx flips the is_active flag on every class of an academic
// year within a transaction.
func (r *ClassRepository) SetActiveByYearTx(ctx context.Context, tx pgx.Tx, year int, active bool) error {
	_, err := tx.Exec(ctx, `UPDATE classes SET is_active = $1 WHERE year = $2`, active, year)
	if err != nil {
		return fmt.Errorf("error setting class activity for year %d: %w", year, err)
	}
	return nil
}
