package models

// RoleType defines user roles
type RoleType string

const (
	RoleStudent     RoleType = "student"
	RoleAdmin       RoleType = "admin"
	RoleInterviewer RoleType = "interviewer"
)

// IsValidTeamRole reports whether the role may be assigned through
// admin team creation.
func IsValidTeamRole(role RoleType) bool {
	return role == RoleAdmin || role == RoleInterviewer
}

// ApplicationStatus defines the lifecycle states of an application
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under-review"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// IsValidApplicationStatus reports whether the status is one of the
// four known application states.
func IsValidApplicationStatus(status ApplicationStatus) bool {
	switch status {
	case ApplicationPending, ApplicationUnderReview, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// TaskStatus defines the lifecycle states of an assigned task.
// Transitions are cyclic: a verified or rejected task may be reset to
// pending and worked again.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskSubmitted TaskStatus = "submitted"
	TaskVerified  TaskStatus = "verified"
	TaskRejected  TaskStatus = "rejected"
)

// IsValidTaskStatus reports whether the status is a known task state.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskPending, TaskSubmitted, TaskVerified, TaskRejected:
		return true
	}
	return false
}

// RoundVerdict defines interview round outcomes
type RoundVerdict string

const (
	VerdictPassed RoundVerdict = "passed"
	VerdictFailed RoundVerdict = "failed"
	VerdictHold   RoundVerdict = "hold"
)

// IsValidRoundVerdict reports whether the verdict is a known outcome.
func IsValidRoundVerdict(verdict RoundVerdict) bool {
	switch verdict {
	case VerdictPassed, VerdictFailed, VerdictHold:
		return true
	}
	return false
}
