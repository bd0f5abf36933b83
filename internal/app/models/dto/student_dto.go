package dto

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name    string `json:"name" binding:"required"`
	Grade   int    `json:"grade" binding:"min=0"`
	ClassID int64  `json:"classId" binding:"required,min=1"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	Grade    int    `json:"grade" binding:"min=0"`
	ClassID  int64  `json:"classId" binding:"required,min=1"`
	IsActive bool   `json:"isActive"`
}
