package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories combines all data access components
type Repositories struct {
	UserRepository        *UserRepository
	ApplicationRepository *ApplicationRepository
	TaskRepository        *TaskRepository
	RoundRepository       *RoundRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		TaskRepository:        NewTaskRepository(db),
		RoundRepository:       NewRoundRepository(db),
	}
}
