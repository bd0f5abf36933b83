package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/pkg/dberrors"
)

// Transition log error types
var (
	ErrTransitionLogNotFound = errors.New("transition log not found")
	// ErrActiveLogExists is returned when the partial unique index rejects a
	// second non-terminal log for the same target year.
	ErrActiveLogExists = errors.New("an active transition log already exists for this year")
)

const transitionLogColumns = `id, from_year, to_year, status, started_at, completed_at, executed_by, total_students, assigned_students, error_message`

// TransitionLogRepository handles database operations for transition logs
type TransitionLogRepository struct {
	db *pgxpool.Pool
}

// NewTransitionLogRepository creates a new transition log repository
func NewTransitionLogRepository(db *pgxpool.Pool) *TransitionLogRepository {
	return &TransitionLogRepository{
		db: db,
	}
}

func scanTransitionLog(row pgx.Row) (*models.TransitionLog, error) {
	var log models.TransitionLog
	err := row.Scan(
		&log.ID,
		&log.FromYear,
		&log.ToYear,
		&log.Status,
		&log.StartedAt,
		&log.CompletedAt,
		&log.ExecutedBy,
		&log.TotalStudents,
		&log.AssignedStudents,
		&log.ErrorMessage,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Create inserts a new pending log. The partial unique index on
// (to_year) WHERE status IN ('pending','in_progress') is the concurrency
// guard: a losing racer gets ErrActiveLogExists.
func (r *TransitionLogRepository) Create(ctx context.Context, log *models.TransitionLog) error {
	query := `
		INSERT INTO transition_logs
			(from_year, to_year, status, started_at, executed_by, total_students, assigned_students)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		log.FromYear, log.ToYear, log.Status, log.StartedAt,
		log.ExecutedBy, log.TotalStudents, log.AssignedStudents,
	).Scan(&log.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "transition_logs_active_to_year_idx") {
			return ErrActiveLogExists
		}
		return fmt.Errorf("error creating transition log: %w", err)
	}

	return nil
}

// GetByID retrieves a transition log by ID
func (r *TransitionLogRepository) GetByID(ctx context.Context, id int64) (*models.TransitionLog, error) {
	query := `SELECT ` + transitionLogColumns + ` FROM transition_logs WHERE id = $1`

	log, err := scanTransitionLog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransitionLogNotFound
		}
		return nil, fmt.Errorf("error retrieving transition log: %w", err)
	}

	return log, nil
}

// GetCurrentByToYear retrieves the most recent non-rolled-back log for a
// target year, or nil when none exists.
func (r *TransitionLogRepository) GetCurrentByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error) {
	query := `
		SELECT ` + transitionLogColumns + `
		FROM transition_logs
		WHERE to_year = $1 AND status != 'rolled_back'
		ORDER BY started_at DESC
		LIMIT 1
	`

	log, err := scanTransitionLog(r.db.QueryRow(ctx, query, toYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving current transition log: %w", err)
	}

	return log, nil
}

// GetActiveByToYear retrieves the pending or in_progress log for a target
// year, or nil when none exists.
func (r *TransitionLogRepository) GetActiveByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error) {
	query := `
		SELECT ` + transitionLogColumns + `
		FROM transition_logs
		WHERE to_year = $1 AND status IN ('pending', 'in_progress')
		LIMIT 1
	`

	log, err := scanTransitionLog(r.db.QueryRow(ctx, query, toYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving active transition log: %w", err)
	}

	return log, nil
}

// HasCompletedByToYear reports whether any completed log exists for a target year
func (r *TransitionLogRepository) HasCompletedByToYear(ctx context.Context, toYear int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM transition_logs WHERE to_year = $1 AND status = 'completed')`,
		toYear).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking completed transition log: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves a log to a new status, guarded by the expected current
// status so two executors cannot both claim the same log.
func (r *TransitionLogRepository) UpdateStatus(ctx context.Context, id int64, from, to models.TransitionStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE transition_logs SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return fmt.Errorf("error updating transition log status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTransitionLogNotFound
	}

	return nil
}

// MarkCompleted moves a log to completed with a completion timestamp
func (r *TransitionLogRepository) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE transition_logs
		SET status = 'completed', completed_at = $1
		WHERE id = $2 AND status = 'in_progress'`,
		completedAt, id)
	if err != nil {
		return fmt.Errorf("error completing transition log: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTransitionLogNotFound
	}

	return nil
}

// MarkFailed moves a log to failed and records the diagnostic message.
// The log stays terminal; failed executions are not re-run.
func (r *TransitionLogRepository) MarkFailed(ctx context.Context, id int64, message string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE transition_logs
		SET status = 'failed', completed_at = $1, error_message = $2
		WHERE id = $3`,
		time.Now(), message, id)
	if err != nil {
		return fmt.Errorf("error marking transition log failed: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTransitionLogNotFound
	}

	return nil
}

// MarkRolledBackByToYearTx marks any active log for the target year as
// rolled_back within a transaction, preserving audit history.
func (r *TransitionLogRepository) MarkRolledBackByToYearTx(ctx context.Context, tx pgx.Tx, toYear int) error {
	_, err := tx.Exec(ctx, `
		UPDATE transition_logs
		SET status = 'rolled_back', completed_at = $1
		WHERE to_year = $2 AND status IN ('pending', 'in_progress')`,
		time.Now(), toYear)
	if err != nil {
		return fmt.Errorf("error rolling back transition logs for year %d: %w", toYear, err)
	}
	return nil
}
