package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	ClassRepository         *ClassRepository
	StudentRepository       *StudentRepository
	AssignmentRepository    *AssignmentRepository
	TransitionLogRepository *TransitionLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		ClassRepository:         NewClassRepository(db),
		StudentRepository:       NewStudentRepository(db),
		AssignmentRepository:    NewAssignmentRepository(db),
		TransitionLogRepository: NewTransitionLogRepository(db),
	}
}
