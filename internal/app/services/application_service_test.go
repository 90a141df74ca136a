package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
)

func newTestApplicationService(apps *fakeApplicationStore, tasks *fakeTaskStore, rounds *fakeRoundStore) ApplicationService {
	return NewApplicationService(apps, tasks, rounds, zerolog.Nop())
}

func validSubmitRequest() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		Motivation: strings.Repeat("I want to build things with the club. ", 3),
		Skills:     []string{"Go", "React"},
		Course:     "B.Tech CSE",
	}
}

func TestSubmitApplication(t *testing.T) {
	apps := newFakeApplicationStore()
	tasks := newFakeTaskStore(apps)
	rounds := newFakeRoundStore()
	svc := newTestApplicationService(apps, tasks, rounds)

	app, err := svc.Submit(context.Background(), 7, validSubmitRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), app.UserID)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.NotNil(t, app.Tasks)
	assert.Empty(t, app.Tasks)
	assert.NotNil(t, app.Rounds)
}

func TestSubmitApplicationTwice(t *testing.T) {
	apps := newFakeApplicationStore()
	svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())

	_, err := svc.Submit(context.Background(), 7, validSubmitRequest())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7, validSubmitRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitApplicationValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.SubmitApplicationRequest)
	}{
		{"empty motivation", func(req *dto.SubmitApplicationRequest) { req.Motivation = "" }},
		{"motivation at 49 characters", func(req *dto.SubmitApplicationRequest) {
			req.Motivation = strings.Repeat("a", 49)
		}},
		{"motivation over 1000 characters", func(req *dto.SubmitApplicationRequest) {
			req.Motivation = strings.Repeat("a", 1001)
		}},
		{"no skills", func(req *dto.SubmitApplicationRequest) { req.Skills = nil }},
		{"too many skills", func(req *dto.SubmitApplicationRequest) {
			req.Skills = make([]string, 11)
			for i := range req.Skills {
				req.Skills[i] = "skill"
			}
		}},
		{"blank skill", func(req *dto.SubmitApplicationRequest) { req.Skills = []string{"Go", "   "} }},
		{"experience too long", func(req *dto.SubmitApplicationRequest) {
			req.PreviousExperience = strings.Repeat("a", 501)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := newFakeApplicationStore()
			svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())
			req := validSubmitRequest()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), 7, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestSubmitApplicationBoundaries(t *testing.T) {
	// Exactly 50 and exactly 1000 characters are both accepted.
	for _, length := range []int{50, 1000} {
		apps := newFakeApplicationStore()
		svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())
		req := validSubmitRequest()
		req.Motivation = strings.Repeat("a", length)

		_, err := svc.Submit(context.Background(), 7, req)
		assert.NoError(t, err, "motivation of %d characters should be accepted", length)
	}
}

func TestSubmitApplicationCountsCharactersNotBytes(t *testing.T) {
	// 49 two-byte characters are 98 bytes but still too short.
	apps := newFakeApplicationStore()
	svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())
	req := validSubmitRequest()
	req.Motivation = strings.Repeat("я", 49)

	_, err := svc.Submit(context.Background(), 7, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// 1000 two-byte characters exceed 1000 bytes but are within bounds.
	req.Motivation = strings.Repeat("я", 1000)
	req.PreviousExperience = strings.Repeat("я", 500)

	_, err = svc.Submit(context.Background(), 7, req)
	assert.NoError(t, err)
}

func TestGetMine(t *testing.T) {
	apps := newFakeApplicationStore()
	tasks := newFakeTaskStore(apps)
	rounds := newFakeRoundStore()
	svc := newTestApplicationService(apps, tasks, rounds)

	submitted, err := svc.Submit(context.Background(), 7, validSubmitRequest())
	require.NoError(t, err)

	adminID := int64(99)
	task := &models.Task{ApplicationID: submitted.ID, Title: "Build a landing page", AssignedByID: &adminID}
	require.NoError(t, tasks.Create(context.Background(), task))

	app, err := svc.GetMine(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, app.Tasks, 1)
	assert.Equal(t, "Build a landing page", app.Tasks[0].Title)
	assert.NotNil(t, app.Rounds)
}

func TestGetMineNoApplication(t *testing.T) {
	apps := newFakeApplicationStore()
	svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())

	_, err := svc.GetMine(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestSubmitTaskAnswer(t *testing.T) {
	apps := newFakeApplicationStore()
	tasks := newFakeTaskStore(apps)
	svc := newTestApplicationService(apps, tasks, newFakeRoundStore())

	submitted, err := svc.Submit(context.Background(), 7, validSubmitRequest())
	require.NoError(t, err)

	task := &models.Task{ApplicationID: submitted.ID, Title: "Build a landing page"}
	require.NoError(t, tasks.Create(context.Background(), task))

	updated, err := svc.SubmitTaskAnswer(context.Background(), 7, task.ID, "https://github.com/asha/landing")
	require.NoError(t, err)
	assert.Equal(t, models.TaskSubmitted, updated.Status)
	assert.Equal(t, "https://github.com/asha/landing", updated.StudentSubmission)
}

func TestSubmitTaskAnswerBlank(t *testing.T) {
	apps := newFakeApplicationStore()
	svc := newTestApplicationService(apps, newFakeTaskStore(apps), newFakeRoundStore())

	_, err := svc.SubmitTaskAnswer(context.Background(), 7, 1, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitTaskAnswerOtherUsersTask(t *testing.T) {
	apps := newFakeApplicationStore()
	tasks := newFakeTaskStore(apps)
	svc := newTestApplicationService(apps, tasks, newFakeRoundStore())

	submitted, err := svc.Submit(context.Background(), 7, validSubmitRequest())
	require.NoError(t, err)

	task := &models.Task{ApplicationID: submitted.ID, Title: "Build a landing page"}
	require.NoError(t, tasks.Create(context.Background(), task))

	// User 8 does not own this task; it must resolve to not found.
	_, err = svc.SubmitTaskAnswer(context.Background(), 8, task.ID, "answer")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}
