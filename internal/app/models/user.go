package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	FullName       string    `json:"fullName" db:"full_name" example:"Asha Rao"`               // User's full name
	Email          string    `json:"email" db:"email" example:"asha@college.edu"`              // User's email address (stored lowercase)
	Password       string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role           RoleType  `json:"role" db:"role" example:"student"`                         // User's role (student, admin or interviewer)
	Department     string    `json:"department" db:"department" example:"Chemistry"`           // User's department
	Phone          string    `json:"phone" db:"phone" example:"9876543210"`                    // User's 10-digit phone number
	RollNumber     *string   `json:"rollNumber,omitempty" db:"roll_number" example:"CH22B045"` // Roll number (nullable)
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`                      // Profile picture URL, empty when unset
	RefreshToken   *string   `json:"-" db:"refresh_token"`                                     // Currently valid refresh token, nil after logout
	IsSuperAdmin   bool      `json:"isSuperAdmin" db:"is_super_admin" example:"false"`         // Super admins may override the task verifier restriction
	CreatedAt      time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// UserSummary is the public projection of a user embedded in
// application responses. Password and refresh token are never part
// of it.
type UserSummary struct {
	ID         int64   `json:"id" db:"id"`
	FullName   string  `json:"fullName" db:"full_name"`
	Email      string  `json:"email" db:"email"`
	Department string  `json:"department,omitempty" db:"department"`
	Phone      string  `json:"phone,omitempty" db:"phone"`
	RollNumber *string `json:"rollNumber,omitempty" db:"roll_number"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Department: u.Department,
		Phone:      u.Phone,
		RollNumber: u.RollNumber,
	}
}
