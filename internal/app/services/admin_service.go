package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/auth"
	"github.com/ignitte/induction/internal/pkg/helpers"
)

// AdminService handles the admin-facing review operations
type AdminService interface {
	ListApplications(ctx context.Context, filter dto.ApplicationFilter) (*dto.ApplicationListResponse, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateStatusRequest, actingAdminID int64) (*models.Application, error)
	DeleteApplication(ctx context.Context, id int64) error
	AssignTask(ctx context.Context, applicationID int64, req *dto.AssignTaskRequest, actingAdminID int64) (*models.Application, error)
	VerifyTask(ctx context.Context, applicationID, taskID int64, req *dto.VerifyTaskRequest, actingUser *models.User) (*models.Application, error)
	CreateTeamMember(ctx context.Context, req *dto.CreateTeamMemberRequest) (*models.User, error)
	AddRound(ctx context.Context, applicationID int64, req *dto.AddRoundRequest) (*models.Application, error)
	DashboardStats(ctx context.Context) (*dto.DashboardResponse, error)
}

type adminService struct {
	users        UserStore
	applications ApplicationStore
	tasks        TaskStore
	rounds       RoundStore
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(users UserStore, applications ApplicationStore, tasks TaskStore, rounds RoundStore, logger zerolog.Logger) AdminService {
	return &adminService{
		users:        users,
		applications: applications,
		tasks:        tasks,
		rounds:       rounds,
		logger:       logger,
	}
}

// ListApplications returns a filtered page of applications, newest
// first. Status, department and search are combined with AND when more
// than one is present.
func (s *adminService) ListApplications(ctx context.Context, filter dto.ApplicationFilter) (*dto.ApplicationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Limit)
	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	apps, total, err := s.applications.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := s.attachTasks(ctx, apps); err != nil {
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Applications: apps,
		Pagination: dto.PaginationInfo{
			Total: total,
			Page:  page,
			Pages: helpers.TotalPages(total, limit),
		},
	}, nil
}

// GetApplicationByID returns the full application detail with owner,
// reviewer, tasks (with verifiers) and rounds resolved.
func (s *adminService) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apps := []models.Application{*app}
	if err := s.attachTasks(ctx, apps); err != nil {
		return nil, err
	}

	roundsByApp, err := s.rounds.ListByApplicationIDs(ctx, []int64{app.ID})
	if err != nil {
		return nil, err
	}

	result := &apps[0]
	result.Rounds = roundsByApp[app.ID]
	if result.Rounds == nil {
		result.Rounds = []models.Round{}
	}

	return result, nil
}

// UpdateStatus sets the application's global status. Any of the four
// statuses may be set at any time; there is no forward-only rule.
func (s *adminService) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateStatusRequest, actingAdminID int64) (*models.Application, error) {
	status := models.ApplicationStatus(req.Status)
	if !models.IsValidApplicationStatus(status) {
		return nil, apperrors.NewValidationError("Invalid status")
	}

	if err := s.applications.UpdateStatus(ctx, id, status, req.AdminNotes, actingAdminID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Str("status", req.Status).Int64("adminID", actingAdminID).Msg("Application status updated")
	return s.GetApplicationByID(ctx, id)
}

// DeleteApplication removes an application and its tasks and rounds.
func (s *adminService) DeleteApplication(ctx context.Context, id int64) error {
	if err := s.applications.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("applicationID", id).Msg("Application deleted")
	return nil
}

// AssignTask appends a pending task to the application.
func (s *adminService) AssignTask(ctx context.Context, applicationID int64, req *dto.AssignTaskRequest, actingAdminID int64) (*models.Application, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("Task title is required")
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ApplicationID: applicationID,
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		AssignedByID:  &actingAdminID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Int64("taskID", task.ID).Int64("adminID", actingAdminID).Msg("Task assigned")
	return s.GetApplicationByID(ctx, applicationID)
}

// VerifyTask changes a task's verification state. Once a task is
// verified, only its original verifier or a super admin may move it
// out of the verified state again. Verifying sets the verifier,
// resetting to pending clears it, other statuses leave it untouched.
func (s *adminService) VerifyTask(ctx context.Context, applicationID, taskID int64, req *dto.VerifyTaskRequest, actingUser *models.User) (*models.Application, error) {
	status := models.TaskStatus(req.Status)
	if !models.IsValidTaskStatus(status) {
		return nil, apperrors.NewValidationError("Invalid task status")
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByApplicationAndID(ctx, applicationID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskVerified && status != models.TaskVerified {
		isOriginalVerifier := task.VerifiedByID != nil && *task.VerifiedByID == actingUser.ID
		if !isOriginalVerifier && !actingUser.IsSuperAdmin {
			return nil, apperrors.NewForbiddenError("Only the original verifier or a super admin can unverify this task")
		}
	}

	updateVerifier := false
	var verifiedBy *int64
	switch status {
	case models.TaskVerified:
		updateVerifier = true
		verifiedBy = &actingUser.ID
	case models.TaskPending:
		updateVerifier = true
		verifiedBy = nil
	}

	if err := s.tasks.SaveVerification(ctx, task.ID, status, req.Feedback, updateVerifier, verifiedBy); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Int64("taskID", taskID).Str("status", req.Status).Int64("adminID", actingUser.ID).Msg("Task verification updated")
	return s.GetApplicationByID(ctx, applicationID)
}

// CreateTeamMember creates an additional staff account with an admin
// or interviewer role.
func (s *adminService) CreateTeamMember(ctx context.Context, req *dto.CreateTeamMemberRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	department := strings.TrimSpace(req.Department)
	role := models.RoleType(strings.TrimSpace(req.Role))

	if fullName == "" || email == "" || req.Password == "" || phone == "" || department == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if !models.IsValidTeamRole(role) {
		return nil, apperrors.NewValidationError("Invalid role")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	emailTaken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	phoneTaken, err := s.users.EmailOrPhoneExists(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if phoneTaken {
		return nil, apperrors.ErrPhoneAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:   fullName,
		Email:      email,
		Password:   hashedPassword,
		Role:       role,
		Department: department,
		Phone:      phone,
	}

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("Team member created")
	return user, nil
}

// AddRound records an interview round on the application.
func (s *adminService) AddRound(ctx context.Context, applicationID int64, req *dto.AddRoundRequest) (*models.Application, error) {
	roundName := strings.TrimSpace(req.RoundName)
	if roundName == "" {
		return nil, apperrors.NewValidationError("Round name is required")
	}
	verdict := models.RoundVerdict(req.Verdict)
	if !models.IsValidRoundVerdict(verdict) {
		return nil, apperrors.NewValidationError("Invalid verdict")
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	round := &models.Round{
		ApplicationID: applicationID,
		RoundName:     roundName,
		InterviewerID: req.InterviewerID,
		Feedback:      strings.TrimSpace(req.Feedback),
		Verdict:       verdict,
		Date:          date,
	}

	if err := s.rounds.Create(ctx, round); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", applicationID).Str("round", roundName).Msg("Interview round recorded")
	return s.GetApplicationByID(ctx, applicationID)
}

// DashboardStats aggregates application counts by status and fetches
// the most recent submissions.
func (s *adminService) DashboardStats(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := dto.DashboardStats{
		Pending:     counts[models.ApplicationPending],
		UnderReview: counts[models.ApplicationUnderReview],
		Accepted:    counts[models.ApplicationAccepted],
		Rejected:    counts[models.ApplicationRejected],
	}
	for _, count := range counts {
		stats.Total += count
	}

	recent, err := s.applications.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.Application{}
	}

	return &dto.DashboardResponse{
		Stats:              stats,
		RecentApplications: recent,
	}, nil
}

// attachTasks resolves the task lists (with verifier summaries) for a
// slice of applications in one query.
func (s *adminService) attachTasks(ctx context.Context, apps []models.Application) error {
	if len(apps) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(apps))
	for i := range apps {
		ids = append(ids, apps[i].ID)
	}

	tasksByApp, err := s.tasks.ListByApplicationIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range apps {
		apps[i].Tasks = tasksByApp[apps[i].ID]
		if apps[i].Tasks == nil {
			apps[i].Tasks = []models.Task{}
		}
	}

	return nil
}
