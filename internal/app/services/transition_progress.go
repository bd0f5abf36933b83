package services

import (
	"context"
	"fmt"
	"math"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
)

// TransitionProgress is the read model every caller polls before invoking a
// workflow stage. It is derived on demand and holds no state of its own.
type TransitionProgress struct {
	ToYear             int                   `json:"toYear"`
	ClassesCreated     bool                  `json:"classesCreated"`
	TotalStudents      int                   `json:"totalStudents"`
	AssignedStudents   int                   `json:"assignedStudents"`
	AssignmentProgress int                   `json:"assignmentProgress"`
	Confirmed          bool                  `json:"confirmed"`
	Executed           bool                  `json:"executed"`
	CurrentLog         *models.TransitionLog `json:"currentLog,omitempty"`
}

// GetTransitionProgress derives the current workflow stage for a target year
// without side effects. A year with no log yet reports all flags false.
func (s *TransitionService) GetTransitionProgress(ctx context.Context, toYear int) (*TransitionProgress, error) {
	if toYear <= 0 {
		return nil, apperrors.NewBadRequestError("year must be positive")
	}

	progress := &TransitionProgress{ToYear: toYear}

	classCount, err := s.classes.CountByYear(ctx, toYear)
	if err != nil {
		return nil, fmt.Errorf("error counting target year classes: %w", err)
	}
	progress.ClassesCreated = classCount > 0

	log, err := s.logs.GetCurrentByToYear(ctx, toYear)
	if err != nil {
		return nil, fmt.Errorf("error loading current transition log: %w", err)
	}
	if log != nil {
		progress.CurrentLog = log
		progress.Confirmed = true
		progress.Executed = log.Status == models.TransitionCompleted
	}

	fromYear := toYear - 1
	if log != nil {
		fromYear = log.FromYear
	}

	// After execution the staged rows are consumed and the source-year join
	// is empty, so the snapshot on the log is the authoritative count.
	if progress.Executed {
		progress.TotalStudents = log.TotalStudents
		progress.AssignedStudents = log.AssignedStudents
		progress.AssignmentProgress = progressPercent(log.AssignedStudents, log.TotalStudents)
		return progress, nil
	}

	total, assigned, err := s.assignmentCoverage(ctx, fromYear, toYear)
	if err != nil {
		return nil, err
	}

	progress.TotalStudents = total
	progress.AssignedStudents = assigned
	progress.AssignmentProgress = progressPercent(assigned, total)

	return progress, nil
}

// assignmentCoverage derives the pair (active source-year students, how many
// of them carry a staged row) from the same join that backs the unassigned
// listing. Both numbers come from one query, so a student deactivated after
// being staged drops out of both sides; a bare count over staged rows would
// keep crediting the stale row while an active student sits uncovered.
func (s *TransitionService) assignmentCoverage(ctx context.Context, fromYear, toYear int) (int, int, error) {
	infos, err := s.assignments.ListAssignmentInfo(ctx, fromYear, toYear)
	if err != nil {
		return 0, 0, fmt.Errorf("error computing assignment coverage: %w", err)
	}

	assigned := 0
	for _, info := range infos {
		if info.Assigned {
			assigned++
		}
	}
	return len(infos), assigned, nil
}

// progressPercent computes an integer 0-100 percentage, rounded.
func progressPercent(assigned, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(assigned) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}
