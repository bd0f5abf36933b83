package models

// Student defines the student model based on the 'students' table.
// class_id is the sole source of truth for current-year placement.
type Student struct {
	ID       int64  `json:"id" db:"id" example:"1"`                 // Unique identifier for the student record
	Name     string `json:"name" db:"name" example:"Amina Nakato"`  // Student's full name
	Grade    int    `json:"grade" db:"grade" example:"3"`           // Current grade level
	ClassID  int64  `json:"classId" db:"class_id" example:"7"`      // ID of the class the student currently belongs to
	IsActive bool   `json:"isActive" db:"is_active" example:"true"` // Whether the student is an active enrolment

	// Relations (populated when needed)
	Class *Class `json:"class,omitempty"` // Current class details
}
