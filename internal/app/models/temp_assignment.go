package models

import "time"

// TempClassAssignment is a staged, non-authoritative student-to-class mapping
// for a target year. Rows are advisory until execution commits them; they
// never affect the live student record on their own. At most one row exists
// per (student_id, year); writes are upserts, not appends.
type TempClassAssignment struct {
	ID        int64     `json:"id" db:"id" example:"1"`                 // Unique identifier for the staged row
	StudentID int64     `json:"studentId" db:"student_id" example:"4"`  // Student being staged
	ClassID   int64     `json:"classId" db:"class_id" example:"12"`     // Target-year class the student is staged into
	Year      int       `json:"year" db:"year" example:"2025"`          // Target academic year
	CreatedAt time.Time `json:"createdAt" db:"created_at"`              // When the row was first staged
}

// StudentAssignmentInfo is the read-side join row returned when listing
// assignment coverage for a target year: the student's current placement
// plus the staged target, if any.
type StudentAssignmentInfo struct {
	StudentID        int64  `json:"studentId" example:"4"`                    // Student record ID
	StudentName      string `json:"studentName" example:"Amina Nakato"`       // Student's full name
	CurrentGrade     int    `json:"currentGrade" example:"3"`                 // Grade in the source year
	NextGrade        int    `json:"nextGrade" example:"4"`                    // Grade the student would hold after execution
	CurrentClassID   int64  `json:"currentClassId" example:"7"`               // Source-year class ID
	CurrentClassName string `json:"currentClassName" example:"Primary 3"`     // Source-year class name
	Department       string `json:"department" example:"Primary"`             // Department of the current class
	Assigned         bool   `json:"assigned" example:"true"`                  // Whether a staged row exists for the target year
	TargetClassID    *int64 `json:"targetClassId,omitempty" example:"12"`     // Staged target class ID (nullable)
	TargetClassName  string `json:"targetClassName,omitempty"`                // Staged target class name, empty when unassigned
}
