package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/app/repositories"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
)

// stageAll runs the happy path up to full coverage: replicate classes then
// auto-assign everyone.
func stageAll(t *testing.T, svc *TransitionService, fromYear, toYear int) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.CreateNextYearClasses(ctx, fromYear, toYear)
	require.NoError(t, err)
	_, err = svc.AutoAssignStudents(ctx, fromYear, toYear)
	require.NoError(t, err)
}

func TestConfirmTransition(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)

	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 7)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, models.TransitionPending, log.Status)
	assert.Equal(t, 2024, log.FromYear)
	assert.Equal(t, 2025, log.ToYear)
	assert.Equal(t, int64(7), log.ExecutedBy)
	assert.Equal(t, 4, log.TotalStudents)
	assert.Equal(t, 4, log.AssignedStudents)
	assert.NotZero(t, log.ID)
	assert.False(t, log.StartedAt.IsZero())
}

func TestConfirmTransitionPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("no target classes", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		_, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})

	t.Run("incomplete coverage", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
		require.NoError(t, err)
		targets, _ := f.GetByYear(ctx, 2025)

		// 3 of 4 assigned is not enough, however close.
		for id := int64(1); id <= 3; id++ {
			require.NoError(t, svc.AssignStudentTemp(ctx, id, targets[0].ID, 2025))
		}
		_, err = svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)

		// The last assignment tips it over.
		require.NoError(t, svc.AssignStudentTemp(ctx, 4, targets[2].ID, 2025))
		_, err = svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.NoError(t, err)
	})

	t.Run("stale staged row does not cover an active student", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
		require.NoError(t, err)
		targets, _ := f.GetByYear(ctx, 2025)

		// Stage three students, then deactivate one of them. Counting rows
		// would say 3 staged for 3 active students; the join knows one of
		// those rows is stale and Denis is still uncovered.
		for id := int64(1); id <= 3; id++ {
			require.NoError(t, svc.AssignStudentTemp(ctx, id, targets[0].ID, 2025))
		}
		f.students[3].IsActive = false

		_, err = svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)

		// Covering Denis completes the active roster; the snapshot counts
		// only active students.
		require.NoError(t, svc.AssignStudentTemp(ctx, 4, targets[2].ID, 2025))
		log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, log.TotalStudents)
		assert.Equal(t, 3, log.AssignedStudents)
	})

	t.Run("zero students", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		f.addClass("Primary", "Primary 1", 2024, true)
		f.addClass("Primary", "Primary 1", 2025, false)
		_, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})

	t.Run("active log exists", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		stageAll(t, svc, 2024, 2025)

		_, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		require.NoError(t, err)
		_, err = svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})

	t.Run("lost creation race", func(t *testing.T) {
		// The pre-check saw no active log but the insert hits the partial
		// unique index: same precondition error as the check.
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		stageAll(t, svc, 2024, 2025)

		f.createLogErr = repositories.ErrActiveLogExists
		_, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})
}

func TestExecuteTransition(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	// Batch size 2 with 4 students exercises the batching loop.
	svc := newTestService(f, 2)
	p1, p2, kigo := seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)

	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 7)
	require.NoError(t, err)

	require.NoError(t, svc.ExecuteTransition(ctx, log.ID))

	// Every student moved into a 2025 class with the grade bumped.
	wantGrades := map[int64]int{1: 2, 2: 2, 3: 3, 4: 1}
	for id, wantGrade := range wantGrades {
		s, err := f.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, wantGrade, s.Grade, "student %d grade", id)
		c, err := f.GetByID(ctx, s.ClassID)
		require.NoError(t, err)
		assert.Equal(t, 2025, c.Year, "student %d class year", id)
		assert.True(t, c.IsActive, "student %d should land in an active class", id)
	}

	// Source-year classes flipped inactive.
	for _, id := range []int64{p1.ID, p2.ID, kigo.ID} {
		c, err := f.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, c.IsActive)
	}

	// Staged rows were consumed.
	remaining, _ := f.CountAssignmentsByYear(ctx, 2025)
	assert.Equal(t, 0, remaining)

	// Log is terminal at completed with a completion timestamp.
	final, err := f.GetLogByID(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransitionCompleted, final.Status)
	require.NotNil(t, final.CompletedAt)
}

func TestExecuteTransitionLeavesDeactivatedStudentsBehind(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	_, p2, _ := seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)

	// Cissy leaves the school after being staged. Her row is now stale;
	// execution must not move her or bump her grade.
	f.students[3].IsActive = false

	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 7)
	require.NoError(t, err)
	require.NoError(t, svc.ExecuteTransition(ctx, log.ID))

	cissy, err := f.GetStudentByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, cissy.Grade)
	assert.Equal(t, p2.ID, cissy.ClassID)
	assert.False(t, cissy.IsActive)

	// The active students still move as usual.
	for _, id := range []int64{1, 2, 4} {
		s, err := f.GetStudentByID(ctx, id)
		require.NoError(t, err)
		c, err := f.GetByID(ctx, s.ClassID)
		require.NoError(t, err)
		assert.Equal(t, 2025, c.Year, "student %d class year", id)
	}

	// The stale row is consumed along with the rest.
	remaining, _ := f.CountAssignmentsByYear(ctx, 2025)
	assert.Equal(t, 0, remaining)
}

func TestExecuteTransitionRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown log", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		err := svc.ExecuteTransition(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrTransitionLogNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		stageAll(t, svc, 2024, 2025)
		log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
		require.NoError(t, err)
		require.NoError(t, svc.ExecuteTransition(ctx, log.ID))

		err = svc.ExecuteTransition(ctx, log.ID)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})
}

func TestExecuteTransitionFailureMarksLogFailed(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)
	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
	require.NoError(t, err)

	f.placementsErr = errors.New("connection reset")
	err = svc.ExecuteTransition(ctx, log.ID)
	require.Error(t, err)

	failed, err := f.GetLogByID(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransitionFailed, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "connection reset")

	// Failed logs are terminal; a retry is refused.
	f.placementsErr = nil
	err = svc.ExecuteTransition(ctx, log.ID)
	assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
}

func TestDeleteNextYearClasses(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)
	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNextYearClasses(ctx, 2025))

	// Target-year classes and staged rows are gone, source year untouched.
	targetCount, _ := f.CountByYear(ctx, 2025)
	assert.Equal(t, 0, targetCount)
	sourceCount, _ := f.CountByYear(ctx, 2024)
	assert.Equal(t, 3, sourceCount)
	staged, _ := f.CountAssignmentsByYear(ctx, 2025)
	assert.Equal(t, 0, staged)

	// The audit trail survives: the log is rolled_back, not deleted.
	rolled, err := f.GetLogByID(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransitionRolledBack, rolled.Status)

	// A fresh workflow for the same year can start over.
	_, err = svc.CreateNextYearClasses(ctx, 2024, 2025)
	assert.NoError(t, err)
}

func TestDeleteNextYearClassesRefusedAfterExecution(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)
	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
	require.NoError(t, err)
	require.NoError(t, svc.ExecuteTransition(ctx, log.ID))

	err = svc.DeleteNextYearClasses(ctx, 2025)
	assert.ErrorIs(t, err, apperrors.ErrTransitionExecuted)

	// Nothing was deleted.
	targetCount, _ := f.CountByYear(ctx, 2025)
	assert.Equal(t, 3, targetCount)
}
