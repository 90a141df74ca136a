package services

import (
	"context"

	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/app/repositories"
)

// UserStore is the user persistence surface the services depend on
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// ApplicationStore is the application persistence surface
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, adminNotes string, reviewedBy int64) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error)
	Recent(ctx context.Context, limit int) ([]models.Application, error)
}

// TaskStore is the task persistence surface
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetForUser(ctx context.Context, taskID, userID int64) (*models.Task, error)
	GetByApplicationAndID(ctx context.Context, applicationID, taskID int64) (*models.Task, error)
	SaveSubmission(ctx context.Context, taskID int64, submission string) error
	SaveVerification(ctx context.Context, taskID int64, status models.TaskStatus, feedback string, updateVerifier bool, verifiedBy *int64) error
	ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Task, error)
}

// RoundStore is the interview round persistence surface
type RoundStore interface {
	Create(ctx context.Context, round *models.Round) error
	ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Round, error)
}

// The pgx-backed repositories satisfy the store interfaces.
var (
	_ UserStore        = (*repositories.UserRepository)(nil)
	_ ApplicationStore = (*repositories.ApplicationRepository)(nil)
	_ TaskStore        = (*repositories.TaskRepository)(nil)
	_ RoundStore       = (*repositories.RoundRepository)(nil)
)
