package dto

// SubmitApplicationRequest represents a student's application submission
type SubmitApplicationRequest struct {
	Motivation         string   `json:"motivation" binding:"required"`
	Skills             []string `json:"skills" binding:"required"`
	PreviousExperience string   `json:"previousExperience"`
	Course             string   `json:"course"`
}

// SubmitTaskRequest represents a student's answer to an assigned task
type SubmitTaskRequest struct {
	Submission string `json:"submission" binding:"required"`
}
