package models

// Class represents one roster group for one academic year. Classes are
// year-scoped: the year-Y+1 counterpart of a class is a distinct row related
// only by matching (department, name).
type Class struct {
	ID            int64  `json:"id" db:"id" example:"1"`                             // Unique identifier for the class
	Name          string `json:"name" db:"name" example:"Primary 3"`                 // Class name, unique within its department and year
	Department    string `json:"department" db:"department" example:"Primary"`       // Department the class belongs to
	Year          int    `json:"year" db:"year" example:"2025"`                      // Academic year the class serves
	MainTeacherID *int64 `json:"mainTeacherId,omitempty" db:"main_teacher_id"`       // ID of the main teacher (nullable)
	IsActive      bool   `json:"isActive" db:"is_active" example:"true"`             // Whether the class is part of the active roster

	// Relations (populated when needed)
	MainTeacher  *User `json:"mainTeacher,omitempty"`  // Main teacher details
	StudentCount int   `json:"studentCount,omitempty"` // Number of students currently in the class
}
