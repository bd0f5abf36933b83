package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okanyildiz/schoolroster/internal/app/models"
)

// Student error types
var (
	ErrStudentNotFound = errors.New("student not found")
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, grade, class_id, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.Name, student.Grade, student.ClassID, student.IsActive,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, grade, class_id, is_active
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Grade,
		&student.ClassID,
		&student.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// List retrieves students filtered by class and/or active flag. Nil filters
// are omitted from the query.
func (r *StudentRepository) List(ctx context.Context, classID *int64, active *bool) ([]*models.Student, error) {
	builder := r.sb.Select("id", "name", "grade", "class_id", "is_active").
		From("students").
		OrderBy("name")

	if classID != nil {
		builder = builder.Where(squirrel.Eq{"class_id": *classID})
	}
	if active != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *active})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Grade,
			&student.ClassID,
			&student.IsActive,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, grade = $2, class_id = $3, is_active = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Grade, student.ClassID, student.IsActive, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Deactivate marks a student as inactive without removing the record
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE students SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// PlacementUpdate is one student's new placement applied during execution.
type PlacementUpdate struct {
	StudentID int64
	ClassID   int64
}

// ApplyPlacementsTx commits a batch of placement updates within a transaction,
// moving each student to the new class and incrementing the grade by exactly
// one. Students deactivated since staging are skipped; their stale staged
// rows must not move them. Returns the number of students actually updated.
func (r *StudentRepository) ApplyPlacementsTx(ctx context.Context, tx pgx.Tx, updates []PlacementUpdate) (int, error) {
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			`UPDATE students SET class_id = $1, grade = grade + 1 WHERE id = $2 AND is_active = true`,
			u.ClassID, u.StudentID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	updated := 0
	for i := range updates {
		cmdTag, err := results.Exec()
		if err != nil {
			return updated, fmt.Errorf("error updating student %d: %w", updates[i].StudentID, err)
		}
		updated += int(cmdTag.RowsAffected())
	}

	return updated, nil
}
