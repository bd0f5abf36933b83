package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okanyildiz/schoolroster/internal/app/models"
	"github.com/okanyildiz/schoolroster/internal/app/repositories"
	"github.com/okanyildiz/schoolroster/internal/db"
	"github.com/okanyildiz/schoolroster/internal/pkg/apperrors"
)

// fakeStore is an in-memory stand-in for the pgx repositories. One struct
// backs all store interfaces so cross-store joins stay consistent. The tx
// passed to the *Tx methods is always nil here; the fake does not simulate
// transactional atomicity beyond injected failures.
type fakeStore struct {
	classes     map[int64]*models.Class
	students    map[int64]*models.Student
	assignments map[int64]*models.TempClassAssignment
	logs        map[int64]*models.TransitionLog

	nextClassID      int64
	nextStudentID    int64
	nextAssignmentID int64
	nextLogID        int64

	placementsErr error // injected into ApplyPlacementsTx
	createLogErr  error // injected into transition log Create
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classes:     make(map[int64]*models.Class),
		students:    make(map[int64]*models.Student),
		assignments: make(map[int64]*models.TempClassAssignment),
		logs:        make(map[int64]*models.TransitionLog),
	}
}

func (f *fakeStore) addClass(department, name string, year int, active bool) *models.Class {
	f.nextClassID++
	c := &models.Class{
		ID:         f.nextClassID,
		Name:       name,
		Department: department,
		Year:       year,
		IsActive:   active,
	}
	f.classes[c.ID] = c
	return c
}

func (f *fakeStore) addStudent(name string, grade int, classID int64, active bool) *models.Student {
	f.nextStudentID++
	s := &models.Student{
		ID:       f.nextStudentID,
		Name:     name,
		Grade:    grade,
		ClassID:  classID,
		IsActive: active,
	}
	f.students[s.ID] = s
	return s
}

func (f *fakeStore) assignmentFor(studentID int64, year int) *models.TempClassAssignment {
	for _, a := range f.assignments {
		if a.StudentID == studentID && a.Year == year {
			return a
		}
	}
	return nil
}

// --- classStore ---

func (f *fakeStore) Create(ctx context.Context, class *models.Class) error {
	for _, c := range f.classes {
		if c.Department == class.Department && c.Name == class.Name && c.Year == class.Year {
			return repositories.ErrClassAlreadyExists
		}
	}
	f.nextClassID++
	class.ID = f.nextClassID
	cp := *class
	f.classes[class.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, repositories.ErrClassNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetByYear(ctx context.Context, year int) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.classes {
		if c.Year == year {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CountByYear(ctx context.Context, year int) (int, error) {
	n := 0
	for _, c := range f.classes {
		if c.Year == year {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetByDepartmentNameYear(ctx context.Context, department, name string, year int) (*models.Class, error) {
	for _, c := range f.classes {
		if c.Department == department && c.Name == name && c.Year == year {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrClassNotFound
}

func (f *fakeStore) DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	var n int64
	for id, c := range f.classes {
		if c.Year == year {
			delete(f.classes, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SetActiveByYearTx(ctx context.Context, tx pgx.Tx, year int, active bool) error {
	for _, c := range f.classes {
		if c.Year == year {
			c.IsActive = active
		}
	}
	return nil
}

// --- studentStore ---

func (f *fakeStore) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) ApplyPlacementsTx(ctx context.Context, tx pgx.Tx, updates []repositories.PlacementUpdate) (int, error) {
	if f.placementsErr != nil {
		return 0, f.placementsErr
	}
	n := 0
	for _, u := range updates {
		s, ok := f.students[u.StudentID]
		if !ok || !s.IsActive {
			continue
		}
		s.ClassID = u.ClassID
		s.Grade++
		n++
	}
	return n, nil
}

// --- assignmentStore ---

func (f *fakeStore) Upsert(ctx context.Context, assignment *models.TempClassAssignment) error {
	if existing := f.assignmentFor(assignment.StudentID, assignment.Year); existing != nil {
		existing.ClassID = assignment.ClassID
		assignment.ID = existing.ID
		return nil
	}
	f.nextAssignmentID++
	assignment.ID = f.nextAssignmentID
	assignment.CreatedAt = time.Now()
	cp := *assignment
	f.assignments[assignment.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, studentID int64, year int) error {
	if existing := f.assignmentFor(studentID, year); existing != nil {
		delete(f.assignments, existing.ID)
	}
	return nil
}

func (f *fakeStore) CountAssignmentsByYear(ctx context.Context, year int) (int, error) {
	n := 0
	for _, a := range f.assignments {
		if a.Year == year {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListAssignmentInfo(ctx context.Context, fromYear, toYear int) ([]*models.StudentAssignmentInfo, error) {
	var out []*models.StudentAssignmentInfo
	for _, s := range f.students {
		if !s.IsActive {
			continue
		}
		current, ok := f.classes[s.ClassID]
		if !ok || current.Year != fromYear {
			continue
		}
		info := &models.StudentAssignmentInfo{
			StudentID:        s.ID,
			StudentName:      s.Name,
			CurrentGrade:     s.Grade,
			NextGrade:        s.Grade + 1,
			CurrentClassID:   current.ID,
			CurrentClassName: current.Name,
			Department:       current.Department,
		}
		if a := f.assignmentFor(s.ID, toYear); a != nil {
			info.Assigned = true
			classID := a.ClassID
			info.TargetClassID = &classID
			if target, ok := f.classes[a.ClassID]; ok {
				info.TargetClassName = target.Name
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (f *fakeStore) GetByYearTx(ctx context.Context, tx pgx.Tx, year int) ([]*models.TempClassAssignment, error) {
	var out []*models.TempClassAssignment
	for _, a := range f.assignments {
		if a.Year == year {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) DeleteAssignmentsByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	var n int64
	for id, a := range f.assignments {
		if a.Year == year {
			delete(f.assignments, id)
			n++
		}
	}
	return n, nil
}

// --- transitionLogStore ---

func (f *fakeStore) CreateLog(ctx context.Context, log *models.TransitionLog) error {
	if f.createLogErr != nil {
		return f.createLogErr
	}
	for _, l := range f.logs {
		if l.ToYear == log.ToYear && !l.Status.IsTerminal() {
			return repositories.ErrActiveLogExists
		}
	}
	f.nextLogID++
	log.ID = f.nextLogID
	cp := *log
	f.logs[log.ID] = &cp
	return nil
}

func (f *fakeStore) GetLogByID(ctx context.Context, id int64) (*models.TransitionLog, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, repositories.ErrTransitionLogNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) GetCurrentByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error) {
	var latest *models.TransitionLog
	for _, l := range f.logs {
		if l.ToYear != toYear || l.Status == models.TransitionRolledBack {
			continue
		}
		if latest == nil || l.ID > latest.ID {
			latest = l
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeStore) GetActiveByToYear(ctx context.Context, toYear int) (*models.TransitionLog, error) {
	for _, l := range f.logs {
		if l.ToYear == toYear && !l.Status.IsTerminal() {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) HasCompletedByToYear(ctx context.Context, toYear int) (bool, error) {
	for _, l := range f.logs {
		if l.ToYear == toYear && l.Status == models.TransitionCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id int64, from, to models.TransitionStatus) error {
	l, ok := f.logs[id]
	if !ok || l.Status != from {
		return repositories.ErrTransitionLogNotFound
	}
	l.Status = to
	return nil
}

func (f *fakeStore) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	l, ok := f.logs[id]
	if !ok {
		return repositories.ErrTransitionLogNotFound
	}
	l.Status = models.TransitionCompleted
	l.CompletedAt = &completedAt
	return nil
}

func (f *fakeStore) MarkFailed(ctx context.Context, id int64, message string) error {
	l, ok := f.logs[id]
	if !ok {
		return repositories.ErrTransitionLogNotFound
	}
	l.Status = models.TransitionFailed
	l.ErrorMessage = &message
	return nil
}

func (f *fakeStore) MarkRolledBackByToYearTx(ctx context.Context, tx pgx.Tx, toYear int) error {
	for _, l := range f.logs {
		if l.ToYear == toYear && !l.Status.IsTerminal() {
			l.Status = models.TransitionRolledBack
		}
	}
	return nil
}

// --- txRunner ---

func (f *fakeStore) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

// Adapters bridging the fake's disambiguated method names onto the store
// interfaces where names collide on one struct.
type fakeStudents struct{ *fakeStore }

func (f fakeStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return f.GetStudentByID(ctx, id)
}

type fakeAssignments struct{ *fakeStore }

func (f fakeAssignments) DeleteByYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	return f.DeleteAssignmentsByYearTx(ctx, tx, year)
}

type fakeLogs struct{ *fakeStore }

func (f fakeLogs) Create(ctx context.Context, log *models.TransitionLog) error {
	return f.CreateLog(ctx, log)
}

func (f fakeLogs) GetByID(ctx context.Context, id int64) (*models.TransitionLog, error) {
	return f.GetLogByID(ctx, id)
}

func newTestService(f *fakeStore, batchSize int) *TransitionService {
	return NewTransitionService(f, fakeStudents{f}, fakeAssignments{f}, fakeLogs{f}, f, batchSize)
}

// seedSchool sets up a small two-department school in the source year:
// Primary 1 and Primary 2 (department "Primary") plus Kigo A (department
// "Kindergarten"), with students spread across them.
func seedSchool(f *fakeStore, year int) (p1, p2, kigo *models.Class) {
	p1 = f.addClass("Primary", "Primary 1", year, true)
	p2 = f.addClass("Primary", "Primary 2", year, true)
	kigo = f.addClass("Kindergarten", "Kigo A", year, true)
	f.addStudent("Amina", 1, p1.ID, true)
	f.addStudent("Brian", 1, p1.ID, true)
	f.addStudent("Cissy", 2, p2.ID, true)
	f.addStudent("Denis", 0, kigo.ID, true)
	return p1, p2, kigo
}

func TestCreateNextYearClasses(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)

	created, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	targets, err := f.GetByYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, targets, 3)
	for _, c := range targets {
		assert.False(t, c.IsActive, "replicated class %q must start inactive", c.Name)
	}

	// Same (department, name) pairs, new year.
	names := make(map[string]bool)
	for _, c := range targets {
		names[c.Department+"/"+c.Name] = true
	}
	assert.True(t, names["Primary/Primary 1"])
	assert.True(t, names["Primary/Primary 2"])
	assert.True(t, names["Kindergarten/Kigo A"])
}

func TestCreateNextYearClassesRerunIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)

	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)

	// Re-running reports the existing count and creates nothing new.
	count, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	targets, _ := f.GetByYear(ctx, 2025)
	assert.Len(t, targets, 3)
}

func TestCreateNextYearClassesValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("non-consecutive years", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		seedSchool(f, 2024)
		_, err := svc.CreateNextYearClasses(ctx, 2024, 2026)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("no source classes", func(t *testing.T) {
		f := newFakeStore()
		svc := newTestService(f, 0)
		_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
		assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
	})
}

func TestAssignStudentTemp(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	p1, _, _ := seedSchool(f, 2024)
	_ = p1

	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)
	targetP1 := targets[0]
	targetP2 := targets[1]

	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targetP1.ID, 2025))
	a := f.assignmentFor(1, 2025)
	require.NotNil(t, a)
	assert.Equal(t, targetP1.ID, a.ClassID)

	// Re-assigning replaces the staged row rather than adding a second one.
	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targetP2.ID, 2025))
	count, _ := f.CountAssignmentsByYear(ctx, 2025)
	assert.Equal(t, 1, count)
	assert.Equal(t, targetP2.ID, f.assignmentFor(1, 2025).ClassID)

	// The live student record is untouched while staging.
	student, _ := f.GetStudentByID(ctx, 1)
	assert.Equal(t, p1.ID, student.ClassID)
	assert.Equal(t, 1, student.Grade)
}

func TestAssignStudentTempRejections(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	p1, _, _ := seedSchool(f, 2024)
	f.addStudent("Edith", 1, p1.ID, false) // inactive, ID 5

	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	t.Run("unknown student", func(t *testing.T) {
		err := svc.AssignStudentTemp(ctx, 99, targets[0].ID, 2025)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("inactive student", func(t *testing.T) {
		err := svc.AssignStudentTemp(ctx, 5, targets[0].ID, 2025)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("unknown class", func(t *testing.T) {
		err := svc.AssignStudentTemp(ctx, 1, 999, 2025)
		assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
	})

	t.Run("class from wrong year", func(t *testing.T) {
		err := svc.AssignStudentTemp(ctx, 1, p1.ID, 2025)
		assert.ErrorIs(t, err, apperrors.ErrTargetClassWrongYear)
	})
}

func TestRemoveStudentTempAssignment(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targets[0].ID, 2025))
	require.NoError(t, svc.RemoveStudentTempAssignment(ctx, 1, 2025))
	assert.Nil(t, f.assignmentFor(1, 2025))

	// Removing an absent assignment is a no-op, not an error.
	assert.NoError(t, svc.RemoveStudentTempAssignment(ctx, 1, 2025))
}

func TestGetUnassignedStudents(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targets[0].ID, 2025))

	infos, err := svc.GetUnassignedStudents(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, infos, 4)

	byID := make(map[int64]*models.StudentAssignmentInfo)
	for _, info := range infos {
		byID[info.StudentID] = info
	}

	assigned := byID[1]
	require.NotNil(t, assigned)
	assert.True(t, assigned.Assigned)
	require.NotNil(t, assigned.TargetClassID)
	assert.Equal(t, targets[0].ID, *assigned.TargetClassID)
	assert.Equal(t, "Primary 1", assigned.CurrentClassName)
	assert.Equal(t, 2, assigned.NextGrade)

	unassigned := byID[3]
	require.NotNil(t, unassigned)
	assert.False(t, unassigned.Assigned)
	assert.Nil(t, unassigned.TargetClassID)
	assert.Equal(t, 3, unassigned.NextGrade)
}

func TestAutoAssignStudents(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	p1, _, _ := seedSchool(f, 2024)
	_ = p1

	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)

	result, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 4, result.AssignedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.SkippedDepartments)

	// Every student landed in the target-year class with the same name.
	for id := int64(1); id <= 4; id++ {
		a := f.assignmentFor(id, 2025)
		require.NotNil(t, a, "student %d should be staged", id)
		target, _ := f.GetByID(ctx, a.ClassID)
		source, _ := f.GetStudentByID(ctx, id)
		currentClass, _ := f.GetByID(ctx, source.ClassID)
		assert.Equal(t, currentClass.Name, target.Name)
		assert.Equal(t, 2025, target.Year)
	}
}

func TestAutoAssignStudentsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)
	_, err := svc.CreateNextYearClasses(ctx, 2024, 2025)
	require.NoError(t, err)
	targets, _ := f.GetByYear(ctx, 2025)

	// Manually stage student 1 somewhere the planner would not pick.
	require.NoError(t, svc.AssignStudentTemp(ctx, 1, targets[1].ID, 2025))

	first, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, first.AssignedCount)

	// The manual choice survives the planner.
	assert.Equal(t, targets[1].ID, f.assignmentFor(1, 2025).ClassID)

	second, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, second.AssignedCount)
	assert.Equal(t, 0, second.SkippedCount)
}

func TestAutoAssignStudentsHoldingClass(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)

	// Two source classes in the same department, but only one has a
	// same-name counterpart in the target year.
	p1 := f.addClass("Primary", "Primary 1", 2024, true)
	legacy := f.addClass("Primary", "Old Stream", 2024, true)
	f.addClass("Primary", "Primary 1", 2025, false)
	f.addStudent("Amina", 1, p1.ID, true)
	f.addStudent("Brian", 1, legacy.ID, true)
	f.addStudent("Cissy", 2, legacy.ID, true)

	result, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, result.AssignedCount)

	holding, err := f.GetByDepartmentNameYear(ctx, "Primary", HoldingClassName, 2025)
	require.NoError(t, err, "holding class should have been created on demand")
	assert.False(t, holding.IsActive)

	// Both unmatched students share the one holding class.
	assert.Equal(t, holding.ID, f.assignmentFor(2, 2025).ClassID)
	assert.Equal(t, holding.ID, f.assignmentFor(3, 2025).ClassID)

	// The matched student did not fall into the holding class.
	assert.NotEqual(t, holding.ID, f.assignmentFor(1, 2025).ClassID)
}

func TestAutoAssignStudentsSkipsAbsentDepartment(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)

	p1 := f.addClass("Primary", "Primary 1", 2024, true)
	kigo := f.addClass("Kindergarten", "Kigo A", 2024, true)
	// Only Primary exists in the target year.
	f.addClass("Primary", "Primary 1", 2025, false)
	f.addStudent("Amina", 1, p1.ID, true)
	f.addStudent("Denis", 0, kigo.ID, true)
	f.addStudent("Edith", 0, kigo.ID, true)

	result, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AssignedCount)
	assert.Equal(t, 2, result.SkippedCount)
	assert.Equal(t, []string{"Kindergarten"}, result.SkippedDepartments)

	// No holding class is invented for a department with no target classes.
	_, err = f.GetByDepartmentNameYear(ctx, "Kindergarten", HoldingClassName, 2025)
	assert.ErrorIs(t, err, repositories.ErrClassNotFound)
}

func TestAutoAssignStudentsRequiresTargetClasses(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	svc := newTestService(f, 0)
	seedSchool(f, 2024)

	_, err := svc.AutoAssignStudents(ctx, 2024, 2025)
	assert.ErrorIs(t, err, apperrors.ErrTransitionPrecondition)
}

func TestValidateYearPair(t *testing.T) {
	tests := []struct {
		name     string
		fromYear int
		toYear   int
		wantErr  bool
	}{
		{name: "consecutive", fromYear: 2024, toYear: 2025},
		{name: "same year", fromYear: 2024, toYear: 2024, wantErr: true},
		{name: "backwards", fromYear: 2025, toYear: 2024, wantErr: true},
		{name: "gap", fromYear: 2024, toYear: 2026, wantErr: true},
		{name: "zero year", fromYear: 0, toYear: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateYearPair(tt.fromYear, tt.toYear)
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
