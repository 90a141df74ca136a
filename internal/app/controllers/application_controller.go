package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/app/services"
	"github.com/ignitte/induction/internal/middleware"
)

// ApplicationController handles student-facing application operations
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Submit handles application submission
// @Summary Submit an application
// @Description Submits the authenticated student's induction application. A student may submit at most one.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted successfully"
// @Failure 400 {object} dto.APIErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.APIErrorResponse "Application already submitted"
// @Router /applications/submit [post]
// @Security BearerAuth
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	userID := ctx.GetInt64("userID")
	app, err := c.applicationService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("applicationID", app.ID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, app, "Application submitted successfully"))
}

// GetMine returns the caller's own application
// @Summary Get my application
// @Description Returns the authenticated student's application with its tasks and rounds
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application found"
// @Failure 404 {object} dto.APIErrorResponse "No application submitted yet"
// @Router /applications/me [get]
// @Security BearerAuth
func (c *ApplicationController) GetMine(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	app, err := c.applicationService.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, app, "Application found"))
}

// SubmitTask records a task answer
// @Summary Submit a task answer
// @Description Saves the student's submission for an assigned task and marks it submitted
// @Tags applications
// @Accept json
// @Produce json
// @Param taskId path int true "Task ID"
// @Param request body dto.SubmitTaskRequest true "Submission content"
// @Success 200 {object} dto.APIResponse{data=models.Task} "Task submitted successfully"
// @Failure 400 {object} dto.APIErrorResponse "Invalid request format or empty submission"
// @Failure 404 {object} dto.APIErrorResponse "Task not found"
// @Router /applications/tasks/{taskId} [post]
// @Security BearerAuth
func (c *ApplicationController) SubmitTask(ctx *gin.Context) {
	taskID, err := strconv.ParseInt(ctx.Param("taskId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid task ID"))
		return
	}

	var req dto.SubmitTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(http.StatusBadRequest, "Invalid request format", err.Error()))
		return
	}

	userID := ctx.GetInt64("userID")
	task, err := c.applicationService.SubmitTaskAnswer(ctx.Request.Context(), userID, taskID, req.Submission)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("taskID", taskID).Msg("Task answer submitted")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, task, "Task submitted successfully"))
}
