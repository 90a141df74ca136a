package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
)

const (
	minMotivationLen = 50
	maxMotivationLen = 1000
	maxSkills        = 10
	maxExperienceLen = 500
)

// ApplicationService handles the student-facing application operations
type ApplicationService interface {
	Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*models.Application, error)
	GetMine(ctx context.Context, userID int64) (*models.Application, error)
	SubmitTaskAnswer(ctx context.Context, userID, taskID int64, submission string) (*models.Task, error)
}

type applicationService struct {
	applications ApplicationStore
	tasks        TaskStore
	rounds       RoundStore
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(applications ApplicationStore, tasks TaskStore, rounds RoundStore, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: applications,
		tasks:        tasks,
		rounds:       rounds,
		logger:       logger,
	}
}

func validateSubmission(req *dto.SubmitApplicationRequest) error {
	motivation := strings.TrimSpace(req.Motivation)
	if motivation == "" || len(req.Skills) == 0 {
		return apperrors.NewValidationError("Motivation and skills are required")
	}
	// Bounds count characters, not bytes.
	motivationLen := utf8.RuneCountInString(motivation)
	if motivationLen < minMotivationLen {
		return apperrors.NewValidationError("Please write at least 50 characters of motivation")
	}
	if motivationLen > maxMotivationLen {
		return apperrors.NewValidationError("Motivation cannot exceed 1000 characters")
	}
	if len(req.Skills) > maxSkills {
		return apperrors.NewValidationError("Please provide between 1 and 10 skills")
	}
	for _, skill := range req.Skills {
		if strings.TrimSpace(skill) == "" {
			return apperrors.NewValidationError("Skills cannot be blank")
		}
	}
	if utf8.RuneCountInString(req.PreviousExperience) > maxExperienceLen {
		return apperrors.NewValidationError("Experience description cannot exceed 500 characters")
	}
	return nil
}

// Submit creates the user's application. Each user may only ever
// submit once.
func (s *applicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	exists, err := s.applications.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("You have already submitted an application")
	}

	app := &models.Application{
		UserID:             userID,
		Motivation:         strings.TrimSpace(req.Motivation),
		Skills:             req.Skills,
		PreviousExperience: strings.TrimSpace(req.PreviousExperience),
		Course:             strings.TrimSpace(req.Course),
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	app.Tasks = []models.Task{}
	app.Rounds = []models.Round{}

	s.logger.Info().Int64("userID", userID).Int64("applicationID", app.ID).Msg("Application submitted")
	return app, nil
}

// GetMine returns the caller's application with its tasks and rounds.
func (s *applicationService) GetMine(ctx context.Context, userID int64) (*models.Application, error) {
	app, err := s.applications.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.attachChildren(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// SubmitTaskAnswer records the student's answer on one of their own
// tasks and moves it to the submitted state. The owner scoping is part
// of the lookup, not an afterthought: task ids belonging to other
// users' applications resolve to not found.
func (s *applicationService) SubmitTaskAnswer(ctx context.Context, userID, taskID int64, submission string) (*models.Task, error) {
	submission = strings.TrimSpace(submission)
	if submission == "" {
		return nil, apperrors.NewValidationError("Submission is required")
	}

	task, err := s.tasks.GetForUser(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.SaveSubmission(ctx, task.ID, submission); err != nil {
		return nil, err
	}

	task.StudentSubmission = submission
	task.Status = models.TaskSubmitted

	s.logger.Info().Int64("userID", userID).Int64("taskID", taskID).Msg("Task answer submitted")
	return task, nil
}

func (s *applicationService) attachChildren(ctx context.Context, app *models.Application) error {
	ids := []int64{app.ID}

	tasksByApp, err := s.tasks.ListByApplicationIDs(ctx, ids)
	if err != nil {
		return err
	}
	app.Tasks = tasksByApp[app.ID]
	if app.Tasks == nil {
		app.Tasks = []models.Task{}
	}

	roundsByApp, err := s.rounds.ListByApplicationIDs(ctx, ids)
	if err != nil {
		return err
	}
	app.Rounds = roundsByApp[app.ID]
	if app.Rounds == nil {
		app.Rounds = []models.Round{}
	}

	return nil
}
