package dto

import (
	"time"

	"github.com/ignitte/induction/internal/app/models"
)

// ApplicationFilter narrows the admin application listing. Filters
// that are present are combined with AND.
type ApplicationFilter struct {
	Status     string
	Department string
	Search     string
	Page       int
	Limit      int
}

// ApplicationListResponse is the paginated admin listing payload
type ApplicationListResponse struct {
	Applications []models.Application `json:"applications"`
	Pagination   PaginationInfo       `json:"pagination"`
}

// UpdateStatusRequest changes an application's global status
type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

// AssignTaskRequest creates a task on an application
type AssignTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// VerifyTaskRequest changes a task's verification status
type VerifyTaskRequest struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

// CreateTeamMemberRequest creates an additional staff account
type CreateTeamMemberRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// AddRoundRequest records an interview round on an application
type AddRoundRequest struct {
	RoundName     string     `json:"roundName" binding:"required"`
	InterviewerID *int64     `json:"interviewerId"`
	Feedback      string     `json:"feedback"`
	Verdict       string     `json:"verdict" binding:"required"`
	Date          *time.Time `json:"date"`
}

// DashboardStats is the fixed-shape status summary
type DashboardStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	UnderReview int64 `json:"underReview"`
	Accepted    int64 `json:"accepted"`
	Rejected    int64 `json:"rejected"`
}

// DashboardResponse is the admin dashboard payload
type DashboardResponse struct {
	Stats              DashboardStats       `json:"stats"`
	RecentApplications []models.Application `json:"recentApplications"`
}
