package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.users[user.ID] = &clone
	return user.ID, nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email || (phone != "" && u.Phone == phone) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if token == nil {
		u.RefreshToken = nil
		return nil
	}
	clone := *token
	u.RefreshToken = &clone
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.Application
	users  *fakeUserStore
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{nextID: 1, apps: make(map[int64]*models.Application)}
}

func (s *fakeApplicationStore) Create(ctx context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.UserID == app.UserID {
			return apperrors.ErrApplicationExists
		}
	}
	app.ID = s.nextID
	s.nextID++
	now := time.Now()
	app.Status = models.ApplicationPending
	app.CurrentRound = "Application Review"
	app.StatusUpdatedAt = now
	app.CreatedAt = now
	app.UpdatedAt = now
	clone := *app
	s.apps[app.ID] = &clone
	return nil
}

func (s *fakeApplicationStore) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeApplicationStore) GetByUserID(ctx context.Context, userID int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.UserID == userID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (s *fakeApplicationStore) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (s *fakeApplicationStore) List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]models.Application, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Application
	for _, a := range s.apps {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if !s.ownerMatches(a.UserID, filter) {
			continue
		}
		matched = append(matched, *a)
	}
	total := int64(len(matched))
	start := int(offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ownerMatches applies the department and search filters against the
// applicant, combined with AND like the SQL listing does.
func (s *fakeApplicationStore) ownerMatches(userID int64, filter dto.ApplicationFilter) bool {
	if filter.Department == "" && filter.Search == "" {
		return true
	}
	if s.users == nil {
		return false
	}
	owner, err := s.users.GetUserByID(context.Background(), userID)
	if err != nil {
		return false
	}
	if filter.Department != "" && owner.Department != filter.Department {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(owner.FullName), needle) &&
			!strings.Contains(strings.ToLower(owner.Email), needle) {
			return false
		}
	}
	return true
}

func (s *fakeApplicationStore) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, adminNotes string, reviewedBy int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	a.AdminNotes = adminNotes
	a.ReviewedByID = &reviewedBy
	a.StatusUpdatedAt = time.Now()
	a.UpdatedAt = a.StatusUpdatedAt
	return nil
}

func (s *fakeApplicationStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}

func (s *fakeApplicationStore) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[models.ApplicationStatus]int64)
	for _, a := range s.apps {
		counts[a.Status]++
	}
	return counts, nil
}

func (s *fakeApplicationStore) Recent(ctx context.Context, limit int) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Application
	for _, a := range s.apps {
		all = append(all, *a)
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*models.Task
	apps   *fakeApplicationStore
}

func newFakeTaskStore(apps *fakeApplicationStore) *fakeTaskStore {
	return &fakeTaskStore{nextID: 1, tasks: make(map[int64]*models.Task), apps: apps}
}

func (s *fakeTaskStore) Create(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = s.nextID
	s.nextID++
	task.Status = models.TaskPending
	task.CreatedAt = time.Now()
	clone := *task
	s.tasks[task.ID] = &clone
	return nil
}

func (s *fakeTaskStore) GetForUser(ctx context.Context, taskID, userID int64) (*models.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[taskID]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	app, err := s.apps.GetByID(ctx, t.ApplicationID)
	if err != nil || app.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *fakeTaskStore) GetByApplicationAndID(ctx context.Context, applicationID, taskID int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.ApplicationID != applicationID {
		return nil, apperrors.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *fakeTaskStore) SaveSubmission(ctx context.Context, taskID int64, submission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return apperrors.ErrTaskNotFound
	}
	t.StudentSubmission = submission
	t.Status = models.TaskSubmitted
	return nil
}

func (s *fakeTaskStore) SaveVerification(ctx context.Context, taskID int64, status models.TaskStatus, feedback string, updateVerifier bool, verifiedBy *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return apperrors.ErrTaskNotFound
	}
	t.Status = status
	t.AdminFeedback = feedback
	if updateVerifier {
		t.VerifiedByID = verifiedBy
	}
	return nil
}

func (s *fakeTaskStore) ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[int64][]models.Task)
	for _, id := range applicationIDs {
		for _, t := range s.tasks {
			if t.ApplicationID == id {
				result[id] = append(result[id], *t)
			}
		}
	}
	return result, nil
}

type fakeRoundStore struct {
	mu     sync.Mutex
	nextID int64
	rounds map[int64]*models.Round
}

func newFakeRoundStore() *fakeRoundStore {
	return &fakeRoundStore{nextID: 1, rounds: make(map[int64]*models.Round)}
}

func (s *fakeRoundStore) Create(ctx context.Context, round *models.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	round.ID = s.nextID
	s.nextID++
	clone := *round
	s.rounds[round.ID] = &clone
	return nil
}

func (s *fakeRoundStore) ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[int64][]models.Round)
	for _, id := range applicationIDs {
		for _, r := range s.rounds {
			if r.ApplicationID == id {
				result[id] = append(result[id], *r)
			}
		}
	}
	return result, nil
}
