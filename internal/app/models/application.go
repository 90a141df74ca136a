package models

import (
	"time"
)

// Application defines the application model based on the
// 'applications' table. Tasks and rounds are owned child records
// keyed by (application_id, id).
type Application struct {
	ID                 int64             `json:"id" db:"id"`
	UserID             int64             `json:"userId" db:"user_id"`
	Motivation         string            `json:"motivation" db:"motivation"`
	Skills             []string          `json:"skills" db:"skills"`
	PreviousExperience string            `json:"previousExperience" db:"previous_experience"`
	Status             ApplicationStatus `json:"status" db:"status"`
	AdminNotes         string            `json:"adminNotes" db:"admin_notes"`
	StatusUpdatedAt    time.Time         `json:"statusUpdatedAt" db:"status_updated_at"`
	ReviewedByID       *int64            `json:"reviewedById,omitempty" db:"reviewed_by"`
	Course             string            `json:"course,omitempty" db:"course"`
	CurrentRound       string            `json:"currentRound" db:"current_round"`
	CreatedAt          time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time         `json:"updatedAt" db:"updated_at"`

	User       *UserSummary `json:"user,omitempty"`       // Relation, no db tag
	ReviewedBy *UserSummary `json:"reviewedBy,omitempty"` // Relation, no db tag
	Tasks      []Task       `json:"tasks"`
	Rounds     []Round      `json:"rounds"`
}

// Task defines a unit of work assigned to an application, based on
// the 'tasks' table. VerifiedByID is non-nil exactly while the task
// is in the verified state.
type Task struct {
	ID                int64      `json:"id" db:"id"`
	ApplicationID     int64      `json:"applicationId" db:"application_id"`
	Title             string     `json:"title" db:"title"`
	Description       string     `json:"description" db:"description"`
	AssignedByID      *int64     `json:"assignedById,omitempty" db:"assigned_by"`
	VerifiedByID      *int64     `json:"verifiedById,omitempty" db:"verified_by"`
	Status            TaskStatus `json:"status" db:"status"`
	StudentSubmission string     `json:"studentSubmission" db:"student_submission"`
	AdminFeedback     string     `json:"adminFeedback" db:"admin_feedback"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`

	VerifiedBy *UserSummary `json:"verifiedBy,omitempty"` // Relation, no db tag
}

// Round defines an interview round record based on the 'rounds' table
type Round struct {
	ID            int64        `json:"id" db:"id"`
	ApplicationID int64        `json:"applicationId" db:"application_id"`
	RoundName     string       `json:"roundName" db:"round_name"`
	InterviewerID *int64       `json:"interviewerId,omitempty" db:"interviewer_id"`
	Feedback      string       `json:"feedback" db:"feedback"`
	Verdict       RoundVerdict `json:"verdict" db:"verdict"`
	Date          time.Time    `json:"date" db:"date"`
}
