package models

import "time"

// TransitionLog records one attempted academic year transition. At most one
// non-terminal (pending/in_progress) log may exist for a given to_year; the
// storage layer enforces this with a partial unique index.
type TransitionLog struct {
	ID               int64            `json:"id" db:"id" example:"1"`                        // Unique identifier for the log row
	FromYear         int              `json:"fromYear" db:"from_year" example:"2024"`        // Academic year being transitioned away from
	ToYear           int              `json:"toYear" db:"to_year" example:"2025"`            // Academic year being transitioned into
	Status           TransitionStatus `json:"status" db:"status" example:"pending"`          // Current lifecycle state
	StartedAt        time.Time        `json:"startedAt" db:"started_at"`                     // When the transition was confirmed
	CompletedAt      *time.Time       `json:"completedAt,omitempty" db:"completed_at"`       // When execution finished (nullable)
	ExecutedBy       int64            `json:"executedBy" db:"executed_by" example:"1"`       // ID of the administrator driving the transition
	TotalStudents    int              `json:"totalStudents" db:"total_students"`             // Student count snapshotted at confirmation
	AssignedStudents int              `json:"assignedStudents" db:"assigned_students"`       // Staged-assignment count snapshotted at confirmation
	ErrorMessage     *string          `json:"errorMessage,omitempty" db:"error_message"`     // Diagnostic from a failed execution (nullable)
}
