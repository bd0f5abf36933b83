package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/app/repositories"
	"github.com/okanyildiz/schoolroster/internal/db"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
	"github.com/okanyildiz/schoolroster/internal/pkg/logger"
)

// HoldingClassName is the per-department fallback class the auto-assignment
// planner stages students into when their class has no same-name counterpart
// in the target year.
const HoldingClassName = "Unassigned"

// Store interfaces consumed by the transition engine. The pgx repositories
// satisfy them; tests substitute in-memory fakes.
type classStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetByYear(ctx context.Context, year int) ([]*models.Class, error)
	CountByYear(ctx context.Context, year int) (int, error)
	GetByDepartmentNameYear(ctx context.Context, department, name string, year int) (*models.Class, error)
	DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error)
	SetActiveByYearTx(ctx context.Context, tx pgx.Tx, year int, active bool) error
}

type studentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ApplyPlacementsTx(ctx context.Context, tx pgx.Tx, updates []repositories.PlacementUpdate) (int, error)
}

type assignmentStore interface {
	Upsert(ctx context.Context, assignment *models.TempClassAssignment) error
	Delete(ctx context.Context, studentID int64, year int) error
	ListAssignmentInfo(ctx context.Context, fromYear, toYear int) ([]*models.StudentAssignmentInfo, error)
	GetByYearTx(ctx context.Context, tx pgx.Tx, year int) ([]*models.TempClassAssignment, error)
	DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error)
}

type transitionLogStore interface {
	Create(ctx context.Context, log *models.TransitionLog) error
	GetByID(ctx context.Context, id int64) (*models.TransitionLog, error)
	GetCurrentByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error)
	GetActiveByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error)
	HasCompletedByToYear(ctx context.Context, toYear int) (bool, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.TransitionStatus) error
	MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, message string) error
	MarkRolledBackByToYearTx(ctx context.Context, tx pgx.Tx, toYear int) error
}

type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// TransitionService drives the academic year transition workflow: class
// replication, staged assignments, auto-assignment, confirmation, execution
// and cleanup. Years are always explicit parameters; the engine never reads
// the calendar.
type TransitionService struct {
	classes     classStore
	students    studentStore
	assignments assignmentStore
	logs        transitionLogStore
	tx          txRunner
	batchSize   int
}

// NewTransitionService creates a new transition service instance
func NewTransitionService(
	classes classStore,
	students studentStore,
	assignments assignmentStore,
	logs transitionLogStore,
	tx txRunner,
	batchSize int,
) *TransitionService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &TransitionService{
		classes:     classes,
		students:    students,
		assignments: assignments,
		logs:        logs,
		tx:          tx,
		batchSize:   batchSize,
	}
}

func validateYearPair(fromYear, toYear int) error {
	if fromYear <= 0 || toYear <= 0 {
		return apperrors.NewBadRequestError("years must be positive")
	}
	if toYear != fromYear+1 {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("transition must target the next academic year, got %d -> %d", fromYear, toYear))
	}
	return nil
}

// CreateNextYearClasses replicates every source-year class into the target
// year as an inactive shell with the same name, department and main teacher.
// Re-running is safe: when target-year classes already exist the call is a
// checked no-op reporting the existing count.
func (s *TransitionService) CreateNextYearClasses(ctx context.Context, fromYear, toYear int) (int, error) {
	if err := validateYearPair(fromYear, toYear); err != nil {
		return 0, err
	}

	existing, err := s.classes.CountByYear(ctx, toYear)
	if err != nil {
		return 0, fmt.Errorf("error checking target year classes: %w", err)
	}
	if existing > 0 {
		logger.Warn().Int("toYear", toYear).Int("existing", existing).
			Msg("Target year classes already exist, skipping replication")
		return existing, nil
	}

	sourceClasses, err := s.classes.GetByYear(ctx, fromYear)
	if err != nil {
		return 0, fmt.Errorf("error loading source year classes: %w", err)
	}
	if len(sourceClasses) == 0 {
		return 0, apperrors.NewPreconditionError(
			fmt.Sprintf("no classes exist for year %d", fromYear))
	}

	created := 0
	for _, src := range sourceClasses {
		class := &models.Class{
			Name:          src.Name,
			Department:    src.Department,
			Year:          toYear,
			MainTeacherID: src.MainTeacherID,
			IsActive:      false,
		}
		if err := s.classes.Create(ctx, class); err != nil {
			// A concurrent replicator may have won the race on the
			// (department, name, year) unique constraint.
			if errors.Is(err, repositories.ErrClassAlreadyExists) {
				continue
			}
			// Partial creation is recoverable: re-run continues at the
			// missing classes, or Cleanup discards the shells.
			return created, fmt.Errorf("error replicating class %q: %w", src.Name, err)
		}
		created++
	}

	logger.Info().Int("fromYear", fromYear).Int("toYear", toYear).Int("created", created).
		Msg("Replicated classes into target year")

	return created, nil
}

// AssignStudentTemp stages a student into a target-year class, replacing any
// prior staged assignment for that student and year. The live student record
// is not touched.
func (s *TransitionService) AssignStudentTemp(ctx context.Context, studentID, targetClassID int64, year int) error {
	if studentID <= 0 || targetClassID <= 0 {
		return apperrors.NewBadRequestError("student and class IDs must be positive")
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error checking student: %w", err)
	}
	if !student.IsActive {
		return apperrors.NewBadRequestError("student is not active")
	}

	class, err := s.classes.GetByID(ctx, targetClassID)
	if err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return apperrors.ErrClassNotFound
		}
		return fmt.Errorf("error checking target class: %w", err)
	}
	if class.Year != year {
		return apperrors.ErrTargetClassWrongYear
	}

	assignment := &models.TempClassAssignment{
		StudentID: studentID,
		ClassID:   targetClassID,
		Year:      year,
	}
	if err := s.assignments.Upsert(ctx, assignment); err != nil {
		return fmt.Errorf("error staging assignment: %w", err)
	}

	return nil
}

// RemoveStudentTempAssignment removes the staged assignment for a student and
// year. Removing an absent assignment is a no-op.
func (s *TransitionService) RemoveStudentTempAssignment(ctx context.Context, studentID int64, year int) error {
	if studentID <= 0 {
		return apperrors.NewBadRequestError("student ID must be positive")
	}
	if err := s.assignments.Delete(ctx, studentID, year); err != nil {
		return fmt.Errorf("error removing staged assignment: %w", err)
	}
	return nil
}

// GetUnassignedStudents lists assignment coverage for the target year: every
// active source-year student with their current placement and, if staged,
// the target class. Always computed from the live staged set.
func (s *TransitionService) GetUnassignedStudents(ctx context.Context, toYear int) ([]*models.StudentAssignmentInfo, error) {
	if toYear <= 0 {
		return nil, apperrors.NewBadRequestError("year must be positive")
	}

	infos, err := s.assignments.ListAssignmentInfo(ctx, s.sourceYear(ctx, toYear), toYear)
	if err != nil {
		return nil, fmt.Errorf("error listing assignment coverage: %w", err)
	}
	return infos, nil
}

// AutoAssignResult reports what the auto-assignment planner did.
type AutoAssignResult struct {
	AssignedCount      int      `json:"assignedCount"`
	SkippedCount       int      `json:"skippedCount"`
	SkippedDepartments []string `json:"skippedDepartments,omitempty"`
}

// AutoAssignStudents stages every unassigned active student into a target
// class: the target-year class matching the student's current (department,
// name), or the department's holding class created on demand. Students whose
// department has no target-year classes at all are skipped and reported.
// Already-staged students are left untouched, making repeat calls idempotent.
func (s *TransitionService) AutoAssignStudents(ctx context.Context, fromYear, toYear int) (*AutoAssignResult, error) {
	if err := validateYearPair(fromYear, toYear); err != nil {
		return nil, err
	}

	targetClasses, err := s.classes.GetByYear(ctx, toYear)
	if err != nil {
		return nil, fmt.Errorf("error loading target year classes: %w", err)
	}
	if len(targetClasses) == 0 {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("no classes exist for year %d, create them first", toYear))
	}

	// Index target classes by department and (department, name)
	byDept := make(map[string][]*models.Class)
	byDeptName := make(map[string]*models.Class)
	for _, c := range targetClasses {
		byDept[c.Department] = append(byDept[c.Department], c)
		byDeptName[c.Department+"\x00"+c.Name] = c
	}

	infos, err := s.assignments.ListAssignmentInfo(ctx, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("error listing assignment coverage: %w", err)
	}

	result := &AutoAssignResult{}
	skippedDepts := make(map[string]bool)

	for _, info := range infos {
		if info.Assigned {
			continue
		}

		if _, ok := byDept[info.Department]; !ok {
			// Department absent from the target year: reported, never
			// silently swallowed.
			result.SkippedCount++
			if !skippedDepts[info.Department] {
				skippedDepts[info.Department] = true
				result.SkippedDepartments = append(result.SkippedDepartments, info.Department)
			}
			continue
		}

		target, ok := byDeptName[info.Department+"\x00"+info.CurrentClassName]
		if !ok {
			target, err = s.holdingClass(ctx, info.Department, toYear, byDeptName)
			if err != nil {
				return result, err
			}
		}

		assignment := &models.TempClassAssignment{
			StudentID: info.StudentID,
			ClassID:   target.ID,
			Year:      toYear,
		}
		if err := s.assignments.Upsert(ctx, assignment); err != nil {
			return result, fmt.Errorf("error staging assignment for student %d: %w", info.StudentID, err)
		}
		result.AssignedCount++
	}

	logger.Info().
		Int("fromYear", fromYear).
		Int("toYear", toYear).
		Int("assigned", result.AssignedCount).
		Int("skipped", result.SkippedCount).
		Msg("Auto-assignment completed")

	return result, nil
}

// holdingClass resolves the department's holding class for the target year,
// creating it on demand and memoizing it in the lookup index.
func (s *TransitionService) holdingClass(ctx context.Context, department string, toYear int, byDeptName map[string]*models.Class) (*models.Class, error) {
	key := department + "\x00" + HoldingClassName
	if c, ok := byDeptName[key]; ok {
		return c, nil
	}

	class, err := s.classes.GetByDepartmentNameYear(ctx, department, HoldingClassName, toYear)
	if err == nil {
		byDeptName[key] = class
		return class, nil
	}
	if !errors.Is(err, repositories.ErrClassNotFound) {
		return nil, fmt.Errorf("error resolving holding class: %w", err)
	}

	class = &models.Class{
		Name:       HoldingClassName,
		Department: department,
		Year:       toYear,
		IsActive:   false,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("error creating holding class for %q: %w", department, err)
	}

	logger.Info().Str("department", department).Int("toYear", toYear).
		Msg("Created holding class for unmatched students")

	byDeptName[key] = class
	return class, nil
}

// sourceYear resolves the source year for a target year: the from_year of the
// current log when one exists, otherwise the preceding year.
func (s *TransitionService) sourceYear(ctx context.Context, toYear int) int {
	log, err := s.logs.GetCurrentByToYear(ctx, toYear)
	if err == nil && log != nil {
		return log.FromYear
	}
	return toYear - 1
}
