package dto

// CreateClassRequest represents class creation data
type CreateClassRequest struct {
	Name          string `json:"name" binding:"required"`
	Department    string `json:"department" binding:"required"`
	Year          int    `json:"year" binding:"required,min=1"`
	MainTeacherID *int64 `json:"mainTeacherId,omitempty"`
}

// UpdateClassRequest represents class update data
type UpdateClassRequest struct {
	Name          string `json:"name" binding:"required"`
	Department    string `json:"department" binding:"required"`
	MainTeacherID *int64 `json:"mainTeacherId,omitempty"`
	IsActive      bool   `json:"isActive"`
}
