package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/logger"
)

// TaskRepository handles task database operations. Tasks belong to an
// application and are only ever addressed through it.
type TaskRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const taskColumns = `t.id, t.application_id, t.title, t.description, t.assigned_by,
	t.verified_by, t.status, t.student_submission, t.admin_feedback, t.created_at`

func scanTask(row pgx.Row, task *models.Task) error {
	return row.Scan(
		&task.ID, &task.ApplicationID, &task.Title, &task.Description, &task.AssignedByID,
		&task.VerifiedByID, &task.Status, &task.StudentSubmission, &task.AdminFeedback,
		&task.CreatedAt)
}

// Create appends a new task to an application
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (application_id, title, description, assigned_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, student_submission, admin_feedback, created_at`,
		task.ApplicationID, task.Title, task.Description, task.AssignedByID).Scan(
		&task.ID, &task.Status, &task.StudentSubmission, &task.AdminFeedback, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating task: %w", err)
	}

	return nil
}

// GetForUser retrieves a task by id scoped to the application owned by
// the given user. Tasks are never looked up across other users'
// applications.
func (r *TaskRepository) GetForUser(ctx context.Context, taskID, userID int64) (*models.Task, error) {
	task := &models.Task{}
	row := r.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN applications a ON t.application_id = a.id
		WHERE t.id = $1 AND a.user_id = $2`, taskID, userID)

	if err := scanTask(row, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return task, nil
}

// GetByApplicationAndID retrieves a task by (application id, task id)
func (r *TaskRepository) GetByApplicationAndID(ctx context.Context, applicationID, taskID int64) (*models.Task, error) {
	task := &models.Task{}
	row := r.db.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.id = $1 AND t.application_id = $2`, taskID, applicationID)

	if err := scanTask(row, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return task, nil
}

// SaveSubmission records the student's answer and moves the task to
// the submitted state.
func (r *TaskRepository) SaveSubmission(ctx context.Context, taskID int64, submission string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET student_submission = $1, status = $2
		WHERE id = $3`,
		submission, models.TaskSubmitted, taskID)

	if err != nil {
		return fmt.Errorf("error saving task submission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// SaveVerification updates the task's status and feedback. The
// verifier column is only touched when updateVerifier is set: it is
// written with verifiedBy on verification and cleared with nil on
// reset to pending.
func (r *TaskRepository) SaveVerification(ctx context.Context, taskID int64, status models.TaskStatus, feedback string, updateVerifier bool, verifiedBy *int64) error {
	update := r.sb.Update("tasks").
		Set("status", status).
		Set("admin_feedback", feedback).
		Where(squirrel.Eq{"id": taskID})

	if updateVerifier {
		update = update.Set("verified_by", verifiedBy)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save verification SQL")
		return fmt.Errorf("failed to build save verification query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error saving task verification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// ListByApplicationIDs retrieves the tasks of the given applications,
// oldest first, with each verifier resolved to public user fields.
// The result is keyed by application id.
func (r *TaskRepository) ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Task, error) {
	tasksByApp := make(map[int64][]models.Task, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return tasksByApp, nil
	}

	query := r.sb.Select(
		"t.id", "t.application_id", "t.title", "t.description", "t.assigned_by",
		"t.verified_by", "t.status", "t.student_submission", "t.admin_feedback", "t.created_at",
		"v.full_name", "v.email",
	).
		From("tasks t").
		LeftJoin("users v ON t.verified_by = v.id").
		Where(squirrel.Eq{"t.application_id": applicationIDs}).
		OrderBy("t.created_at ASC", "t.id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list tasks SQL")
		return nil, fmt.Errorf("failed to build list tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.Task
		var verifierName, verifierEmail *string

		err := rows.Scan(
			&task.ID, &task.ApplicationID, &task.Title, &task.Description, &task.AssignedByID,
			&task.VerifiedByID, &task.Status, &task.StudentSubmission, &task.AdminFeedback,
			&task.CreatedAt, &verifierName, &verifierEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning task row: %w", err)
		}

		if task.VerifiedByID != nil && verifierName != nil {
			task.VerifiedBy = &models.UserSummary{
				ID:       *task.VerifiedByID,
				FullName: *verifierName,
				Email:    *verifierEmail,
			}
		}

		tasksByApp[task.ApplicationID] = append(tasksByApp[task.ApplicationID], task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasksByApp, nil
}
