package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okanyildiz/schoolroster/internal/app/models"
)

// AssignmentRepository handles database operations for staged (temporary)
// class assignments. Rows here are advisory until execution commits them.
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

// Upsert stages an assignment for a student, replacing any prior staged row
// for the same (student, year). Last write wins.
func (r *AssignmentRepository) Upsert(ctx context.Context, assignment *models.TempClassAssignment) error {
	query := `
		INSERT INTO temp_class_assignments (student_id, class_id, year)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, year)
		DO UPDATE SET class_id = EXCLUDED.class_id
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		assignment.StudentID, assignment.ClassID, assignment.Year,
	).Scan(&assignment.ID)
	if err != nil {
		return fmt.Errorf("error staging assignment: %w", err)
	}

	return nil
}

// Delete removes the staged row for a student/year. Deleting an absent row is
// not an error.
func (r *AssignmentRepository) Delete(ctx context.Context, studentID int64, year int) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM temp_class_assignments WHERE student_id = $1 AND year = $2`,
		studentID, year)
	if err != nil {
		return fmt.Errorf("error removing staged assignment: %w", err)
	}
	return nil
}

// ListAssignmentInfo computes, for every active student in the source year,
// whether a staged row exists for the target year. This is a live join over
// students and staged assignments, never a cached flag.
func (r *AssignmentRepository) ListAssignmentInfo(ctx context.Context, fromYear, toYear int) ([]*models.StudentAssignmentInfo, error) {
	query := `
		SELECT
			s.id, s.name, s.grade,
			c.id, c.name, c.department,
			t.class_id, tc.name
		FROM students s
		JOIN classes c ON c.id = s.class_id
		LEFT JOIN temp_class_assignments t ON t.student_id = s.id AND t.year = $2
		LEFT JOIN classes tc ON tc.id = t.class_id
		WHERE s.is_active = true AND c.year = $1
		ORDER BY c.department, c.name, s.name
	`

	rows, err := r.db.Query(ctx, query, fromYear, toYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*models.StudentAssignmentInfo
	for rows.Next() {
		var info models.StudentAssignmentInfo
		var targetClassID *int64
		var targetClassName *string
		if err := rows.Scan(
			&info.StudentID,
			&info.StudentName,
			&info.CurrentGrade,
			&info.CurrentClassID,
			&info.CurrentClassName,
			&info.Department,
			&targetClassID,
			&targetClassName,
		); err != nil {
			return nil, err
		}

		info.NextGrade = info.CurrentGrade + 1
		info.Assigned = targetClassID != nil
		info.TargetClassID = targetClassID
		if targetClassName != nil {
			info.TargetClassName = *targetClassName
		}

		infos = append(infos, &info)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return infos, nil
}

// GetByYearTx retrieves all staged assignments for a target year within a
// transaction, locking the rows against concurrent staging writes.
func (r *AssignmentRepository) GetByYearTx(ctx context.Context, tx pgx.Tx, year int) ([]*models.TempClassAssignment, error) {
	query := `
		SELECT id, student_id, class_id, year, created_at
		FROM temp_class_assignments
		WHERE year = $1
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.TempClassAssignment
	for rows.Next() {
		var a models.TempClassAssignment
		if err := rows.Scan(&a.ID, &a.StudentID, &a.ClassID, &a.Year, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// DeleteByYearTx removes every staged assignment for a target year within a
// transaction and returns the number of deleted rows.
func (r *AssignmentRepository) DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM temp_class_assignments WHERE year = $1`, year)
	if err != nil {
		return 0, fmt.Errorf("error deleting staged assignments for year %d: %w", year, err)
	}
	return cmdTag.RowsAffected(), nil
}
