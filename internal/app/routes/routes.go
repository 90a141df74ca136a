package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignitte/induction/internal/app/controllers"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, gin.H{"status": "ok"}, "Service healthy"))
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- User routes ---
	users := v1.Group("/users")
	{
		users.POST("/register", authController.Register)
		users.POST("/login", authController.Login)
		users.POST("/refresh-token", authController.RefreshToken)

		usersAuthenticated := users.Group("")
		usersAuthenticated.Use(authMiddleware.JWTAuth())
		{
			usersAuthenticated.POST("/logout", authController.Logout)
			usersAuthenticated.GET("/me", authController.Me)
			usersAuthenticated.POST("/change-password", authController.ChangePassword)
		}
	}

	// --- Student application routes ---
	applications := v1.Group("/applications")
	applications.Use(authMiddleware.JWTAuth())
	applications.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		applications.POST("/submit", applicationController.Submit)
		applications.GET("/me", applicationController.GetMine)
		applications.POST("/tasks/:taskId", applicationController.SubmitTask)
	}

	// --- Admin review routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth())
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard/stats", adminController.Dashboard)
		admin.POST("/team/create", adminController.CreateTeamMember)

		adminApps := admin.Group("/applications")
		{
			adminApps.GET("", adminController.ListApplications)
			adminApps.GET("/:applicationId", adminController.GetApplication)
			adminApps.DELETE("/:applicationId", adminController.DeleteApplication)
			adminApps.PATCH("/:applicationId", adminController.UpdateStatus)
			adminApps.POST("/:applicationId/task", adminController.AssignTask)
			adminApps.PATCH("/:applicationId/tasks/:taskId", adminController.VerifyTask)
			adminApps.POST("/:applicationId/rounds", adminController.AddRound)
		}
	}
}
