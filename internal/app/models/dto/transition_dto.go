package dto

// YearPairRequest carries the explicit source and target academic years used
// by the transition workflow. The engine never infers years from the clock.
type YearPairRequest struct {
	FromYear int `json:"fromYear" binding:"required,min=1"`
	ToYear   int `json:"toYear" binding:"required,min=1"`
}

// AssignStudentRequest stages one student into a target-year class
type AssignStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	ClassID   int64 `json:"classId" binding:"required,min=1"`
	ToYear    int   `json:"toYear" binding:"required,min=1"`
}

// RemoveAssignmentRequest removes a staged assignment
type RemoveAssignmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	ToYear    int   `json:"toYear" binding:"required,min=1"`
}

// ExecuteTransitionRequest identifies the confirmed log to execute
type ExecuteTransitionRequest struct {
	LogID int64 `json:"logId" binding:"required,min=1"`
}

// CreateClassesResponse reports class replication results
type CreateClassesResponse struct {
	CreatedCount int `json:"createdCount"`
}
