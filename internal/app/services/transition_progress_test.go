package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
)

func TestGetTransitionProgressFreshYear(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)

	progress, err := svc.GetTransitionProgress(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, progress.ToYear)
	assert.False(t, progress.ClassesCreated)
	assert.False(t, progress.Confirmed)
	assert.False(t, progress.Executed)
	assert.Nil(t, progress.CurrentLog)
	assert.Equal(t, 4, progress.TotalStudents)
	assert.Equal(t, 0, progress.AssignedStudents)
	assert.Equal(t, 0, progress.AssignmentProgress)
}

func TestGetTransitionProgressMidWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targets[0].ID, 2025))

	progress, err := svc.GetTransitionProgress(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, progress.ClassesCreated)
	assert.False(t, progress.Confirmed)
	assert.Equal(t, 4, progress.TotalStudents)
	assert.Equal(t, 1, progress.AssignedStudents)
	assert.Equal(t, 25, progress.AssignmentProgress)
}

func TestGetTransitionProgressIgnoresStaleStagedRows(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, svc.AssignStudentTemp(ctx, id, targets[0].ID, 2025))
	}
	f.students[3].IsActive = false

	// Three staged rows exist but one belongs to a deactivated student:
	// the roster is three active students with two of them covered, never
	// a spurious 100%.
	progress, err := svc.GetTransitionProgress(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalStudents)
	assert.Equal(t, 2, progress.AssignedStudents)
	assert.Equal(t, 67, progress.AssignmentProgress)
}

func TestGetTransitionProgressAfterExecution(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	stageAll(t, svc, 2024, 2025)
	log, err := svc.ConfirmTransition(ctx, 2024, 2025, 1)
	require.NoError(t, err)
	require.NoError(t, svc.ExecuteTransition(ctx, log.ID))

	// The staged rows are consumed, so the counts must come from the log
	// snapshot rather than the now-empty join.
	progress, err := svc.GetTransitionProgress(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, progress.Confirmed)
	assert.True(t, progress.Executed)
	require.NotNil(t, progress.CurrentLog)
	assert.Equal(t, 4, progress.TotalStudents)
	assert.Equal(t, 4, progress.AssignedStudents)
	assert.Equal(t, 100, progress.AssignmentProgress)
}

func TestGetTransitionProgressInvalidYear(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f, 0)
	_, err := svc.GetTransitionProgress(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		assigned int
		total    int
		want     int
	}{
		{name: "empty", assigned: 0, total: 0, want: 0},
		{name: "none", assigned: 0, total: 10, want: 0},
		{name: "third rounds down", assigned: 1, total: 3, want: 33},
		{name: "two thirds rounds up", assigned: 2, total: 3, want: 67},
		{name: "full", assigned: 3, total: 3, want: 100},
		{name: "over-assigned clamps", assigned: 5, total: 4, want: 100},
		{name: "negative total", assigned: 1, total: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressPercent(tt.assigned, tt.total))
		})
	}
}
