package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
)

// TransitionStatus defines the lifecycle state of a transition log
type TransitionStatus string

const (
	TransitionPending    TransitionStatus = "pending"
	TransitionInProgress TransitionStatus = "in_progress"
	TransitionCompleted  TransitionStatus = "completed"
	TransitionFailed     TransitionStatus = "failed"
	TransitionRolledBack TransitionStatus = "rolled_back"
)

// IsTerminal reports whether the status permits no further state changes.
func (s TransitionStatus) IsTerminal() bool {
	return s == TransitionCompleted || s == TransitionFailed || s == TransitionRolledBack
}
