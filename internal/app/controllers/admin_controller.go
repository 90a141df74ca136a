package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/app/services"
	"github.com/ignitte/induction/internal/middleware"
	"github.com/ignitte/induction/internal/pkg/helpers"
)

// AdminController handles admin review operations
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid "+name))
		return 0, false
	}
	return id, true
}

// ListApplications lists applications with filters
// @Summary List applications
// @Description Returns a paginated list of applications. Status, department and search filters combine with AND.
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status (pending, under-review, accepted, rejected)"
// @Param department query string false "Filter by applicant department"
// @Param search query string false "Match against applicant name or email"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse} "Applications retrieved"
// @Router /admin/applications [get]
// @Security BearerAuth
func (c *AdminController) ListApplications(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	filter := dto.ApplicationFilter{
		Status:     ctx.Query("status"),
		Department: ctx.Query("department"),
		Search:     ctx.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	result, err := c.adminService.ListApplications(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, result, "Applications retrieved"))
}

// GetApplication returns one application in full detail
// @Summary Get application detail
// @Description Returns an application with its applicant, reviewer, tasks and rounds
// @Tags admin
// @Produce json
// @Param applicationId path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application retrieved"
// @Failure 404 {object} dto.APIErrorResponse "Application not found"
// @Router /admin/applications/{applicationId} [get]
// @Security BearerAuth
func (c *AdminController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	app, err := c.adminService.GetApplicationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, app, "Application retrieved"))
}

// UpdateStatus updates an application's status
// @Summary Update application status
// @Description Sets the application's status and optional admin notes, recording the reviewer
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationId path int true "Application ID"
// @Param request body dto.UpdateStatusRequest true "New status and notes"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Status updated"
// @Failure 400 {object} dto.APIErrorResponse "Invalid status"
// @Failure 404 {object} dto.APIErrorResponse "Application not found"
// @Router /admin/applications/{applicationId} [patch]
// @Security BearerAuth
func (c *AdminController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	app, err := c.adminService.UpdateStatus(ctx.Request.Context(), id, &req, ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, app, "Status updated"))
}

// DeleteApplication removes an application
// @Summary Delete application
// @Description Deletes an application together with its tasks and rounds
// @Tags admin
// @Produce json
// @Param applicationId path int true "Application ID"
// @Success 200 {object} dto.APIResponse "Application deleted"
// @Failure 404 {object} dto.APIErrorResponse "Application not found"
// @Router /admin/applications/{applicationId} [delete]
// @Security BearerAuth
func (c *AdminController) DeleteApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	if err := c.adminService.DeleteApplication(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Application deleted"))
}

// AssignTask assigns a task to an application
// @Summary Assign a task
// @Description Adds a pending task to an application
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationId path int true "Application ID"
// @Param request body dto.AssignTaskRequest true "Task details"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Task assigned"
// @Failure 400 {object} dto.APIErrorResponse "Missing task title"
// @Failure 404 {object} dto.APIErrorResponse "Application not found"
// @Router /admin/applications/{applicationId}/task [post]
// @Security BearerAuth
func (c *AdminController) AssignTask(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	app, err := c.adminService.AssignTask(ctx.Request.Context(), id, &req, ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, app, "Task assigned"))
}

// VerifyTask updates a task's verification state
// @Summary Verify a task
// @Description Moves a task between pending, submitted, verified and rejected. Unverifying is limited to the original verifier or a super admin.
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationId path int true "Application ID"
// @Param taskId path int true "Task ID"
// @Param request body dto.VerifyTaskRequest true "New status and feedback"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Task updated"
// @Failure 400 {object} dto.APIErrorResponse "Invalid task status"
// @Failure 403 {object} dto.APIErrorResponse "Not allowed to unverify this task"
// @Failure 404 {object} dto.APIErrorResponse "Application or task not found"
// @Router /admin/applications/{applicationId}/tasks/{taskId} [patch]
// @Security BearerAuth
func (c *AdminController) VerifyTask(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(ctx, "taskId")
	if !ok {
		return
	}

	var req dto.VerifyTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Authentication required"))
		return
	}

	app, err := c.adminService.VerifyTask(ctx.Request.Context(), applicationID, taskID, &req, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, app, "Task updated"))
}

// AddRound records an interview round
// @Summary Record an interview round
// @Description Appends an interview round with its verdict to an application
// @Tags admin
// @Accept json
// @Produce json
// @Param applicationId path int true "Application ID"
// @Param request body dto.AddRoundRequest true "Round details"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Round recorded"
// @Failure 400 {object} dto.APIErrorResponse "Missing round name or invalid verdict"
// @Failure 404 {object} dto.APIErrorResponse "Application not found"
// @Router /admin/applications/{applicationId}/rounds [post]
// @Security BearerAuth
func (c *AdminController) AddRound(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.AddRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	app, err := c.adminService.AddRound(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, app, "Round recorded"))
}

// CreateTeamMember creates an admin or interviewer account
// @Summary Create team member
// @Description Creates an additional staff account with the admin or interviewer role
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamMemberRequest true "Team member details"
// @Success 201 {object} dto.APIResponse{data=models.User} "Team member created"
// @Failure 400 {object} dto.APIErrorResponse "Invalid role or missing fields"
// @Failure 409 {object} dto.APIErrorResponse "Email or phone already in use"
// @Router /admin/team/create [post]
// @Security BearerAuth
func (c *AdminController) CreateTeamMember(ctx *gin.Context) {
	var req dto.CreateTeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	user, err := c.adminService.CreateTeamMember(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Team member created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, user, "Team member created"))
}

// Dashboard returns aggregate stats
// @Summary Dashboard statistics
// @Description Returns application counts by status and the most recent submissions
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved"
// @Router /admin/dashboard/stats [get]
// @Security BearerAuth
func (c *AdminController) Dashboard(ctx *gin.Context) {
	result, err := c.adminService.DashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, result, "Dashboard retrieved"))
}
