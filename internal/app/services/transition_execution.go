package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/app/repositories"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
	"github.com/okanyildiz/schoolroster/internal/pkg/logger"
)

// ConfirmTransition validates full assignment coverage and creates the
// pending transition log. Preconditions are checked in order; the first
// failure wins. This is the only place a log is created, and the storage
// layer's partial unique index settles concurrent confirmations.
func (s *TransitionService) ConfirmTransition(ctx context.Context, fromYear, toYear int, actorID int64) (*models.TransitionLog, error) {
	if err := validateYearPair(fromYear, toYear); err != nil {
		return nil, err
	}
	if actorID <= 0 {
		return nil, apperrors.NewBadRequestError("actor ID must be positive")
	}

	classCount, err := s.classes.CountByYear(ctx, toYear)
	if err != nil {
		return nil, fmt.Errorf("error counting target year classes: %w", err)
	}
	if classCount == 0 {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("no classes exist for year %d, create them first", toYear))
	}

	total, assigned, err := s.assignmentCoverage(ctx, fromYear, toYear)
	if err != nil {
		return nil, err
	}
	if total == 0 || assigned < total {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("all students must be assigned before confirming (%d of %d assigned)", assigned, total))
	}

	active, err := s.logs.GetActiveByToYear(ctx, toYear)
	if err != nil {
		return nil, fmt.Errorf("error checking active transition log: %w", err)
	}
	if active != nil {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("a transition into year %d is already pending or in progress", toYear))
	}

	log := &models.TransitionLog{
		FromYear:         fromYear,
		ToYear:           toYear,
		Status:           models.TransitionPending,
		StartedAt:        time.Now(),
		ExecutedBy:       actorID,
		TotalStudents:    total,
		AssignedStudents: assigned,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		// The partial unique index is the real concurrency guard; a losing
		// racer surfaces the same precondition error as the check above.
		if errors.Is(err, repositories.ErrActiveLogExists) {
			return nil, apperrors.NewPreconditionError(
				fmt.Sprintf("a transition into year %d is already pending or in progress", toYear))
		}
		return nil, fmt.Errorf("error creating transition log: %w", err)
	}

	logger.Info().
		Int("fromYear", fromYear).
		Int("toYear", toYear).
		Int64("logID", log.ID).
		Int64("actorID", actorID).
		Int("totalStudents", total).
		Msg("Transition confirmed")

	return log, nil
}

// ExecuteTransition irreversibly commits the staged plan recorded by a
// pending log: every staged student moves to their target class with the
// grade incremented by one, source-year classes deactivate, target-year
// classes activate, and the consumed staged rows are deleted. The data steps
// run inside one transaction; any failure leaves the log terminal at failed
// with a diagnostic. Failed logs are not re-executable.
func (s *TransitionService) ExecuteTransition(ctx context.Context, logID int64) error {
	if logID <= 0 {
		return apperrors.NewBadRequestError("log ID must be positive")
	}

	log, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransitionLogNotFound) {
			return apperrors.ErrTransitionLogNotFound
		}
		return fmt.Errorf("error loading transition log: %w", err)
	}
	if log.Status != models.TransitionPending {
		return apperrors.NewPreconditionError(
			fmt.Sprintf("transition log %d is %s, only pending logs can be executed", logID, log.Status))
	}

	// Claiming the log is status-guarded, so a second executor loses here.
	if err := s.logs.UpdateStatus(ctx, logID, models.TransitionPending, models.TransitionInProgress); err != nil {
		if errors.Is(err, repositories.ErrTransitionLogNotFound) {
			return apperrors.NewPreconditionError(
				fmt.Sprintf("transition log %d is no longer pending", logID))
		}
		return fmt.Errorf("error claiming transition log: %w", err)
	}

	applied := 0
	execErr := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignments, err := s.assignments.GetByYearTx(ctx, tx, log.ToYear)
		if err != nil {
			return fmt.Errorf("error loading staged assignments: %w", err)
		}

		// Student reassignment strictly precedes the class activity flip so
		// no reader ever observes students pointing at inactive classes.
		for start := 0; start < len(assignments); start += s.batchSize {
			end := start + s.batchSize
			if end > len(assignments) {
				end = len(assignments)
			}

			updates := make([]repositories.PlacementUpdate, 0, end-start)
			for _, a := range assignments[start:end] {
				updates = append(updates, repositories.PlacementUpdate{
					StudentID: a.StudentID,
					ClassID:   a.ClassID,
				})
			}

			n, err := s.students.ApplyPlacementsTx(ctx, tx, updates)
			applied += n
			if err != nil {
				return fmt.Errorf("error applying placements (batch %d-%d): %w", start, end, err)
			}
		}

		if err := s.classes.SetActiveByYearTx(ctx, tx, log.FromYear, false); err != nil {
			return err
		}
		if err := s.classes.SetActiveByYearTx(ctx, tx, log.ToYear, true); err != nil {
			return err
		}

		if _, err := s.assignments.DeleteByYearTx(ctx, tx, log.ToYear); err != nil {
			return err
		}

		return nil
	})

	if execErr != nil {
		logger.Error().Err(execErr).Int64("logID", logID).Int("applied", applied).
			Msg("Transition execution failed")
		if failErr := s.logs.MarkFailed(ctx, logID, execErr.Error()); failErr != nil {
			logger.Error().Err(failErr).Int64("logID", logID).
				Msg("Failed to mark transition log as failed")
		}
		return fmt.Errorf("transition execution failed: %w", execErr)
	}

	if err := s.logs.MarkCompleted(ctx, logID, time.Now()); err != nil {
		// The data changes are committed; only the bookkeeping is off.
		logger.Error().Err(err).Int64("logID", logID).
			Msg("Transition data committed but completing the log failed")
		return fmt.Errorf("error completing transition log: %w", err)
	}

	logger.Info().
		Int64("logID", logID).
		Int("fromYear", log.FromYear).
		Int("toYear", log.ToYear).
		Int("studentsMoved", applied).
		Msg("Transition executed")

	return nil
}

// DeleteNextYearClasses abandons a transition before execution: target-year
// classes and staged assignments are removed and any active log is marked
// rolled_back, preserving the audit trail. Refused once execution completed.
func (s *TransitionService) DeleteNextYearClasses(ctx context.Context, toYear int) error {
	if toYear <= 0 {
		return apperrors.NewBadRequestError("year must be positive")
	}

	completed, err := s.logs.HasCompletedByToYear(ctx, toYear)
	if err != nil {
		return fmt.Errorf("error checking completed transition: %w", err)
	}
	if completed {
		return apperrors.ErrTransitionExecuted
	}

	var deletedClasses, deletedAssignments int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.logs.MarkRolledBackByToYearTx(ctx, tx, toYear); err != nil {
			return err
		}

		deletedAssignments, err = s.assignments.DeleteByYearTx(ctx, tx, toYear)
		if err != nil {
			return err
		}

		deletedClasses, err = s.classes.DeleteByYearTx(ctx, tx, toYear)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("error cleaning up transition for year %d: %w", toYear, err)
	}

	logger.Info().
		Int("toYear", toYear).
		Int64("deletedClasses", deletedClasses).
		Int64("deletedAssignments", deletedAssignments).
		Msg("Transition abandoned and target year cleaned up")

	return nil
}
