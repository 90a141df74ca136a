package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/app/models/dto"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/dberrors"
	"github.com/ignitte/induction/internal/pkg/logger"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const applicationColumns = `a.id, a.user_id, a.motivation, a.skills, a.previous_experience,
	a.status, a.admin_notes, a.status_updated_at, a.reviewed_by, a.course,
	a.current_round, a.created_at, a.updated_at`

func scanApplication(row pgx.Row, app *models.Application) error {
	return row.Scan(
		&app.ID, &app.UserID, &app.Motivation, &app.Skills, &app.PreviousExperience,
		&app.Status, &app.AdminNotes, &app.StatusUpdatedAt, &app.ReviewedByID,
		&app.Course, &app.CurrentRound, &app.CreatedAt, &app.UpdatedAt)
}

// Create inserts a new application. The one-application-per-user rule
// is checked in the service; the applications_user_id_key constraint
// backstops concurrent submissions.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (user_id, motivation, skills, previous_experience, course)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, admin_notes, status_updated_at, current_round, created_at, updated_at`,
		app.UserID, app.Motivation, app.Skills, app.PreviousExperience, app.Course).Scan(
		&app.ID, &app.Status, &app.AdminNotes, &app.StatusUpdatedAt,
		&app.CurrentRound, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_user_id_key") {
			return apperrors.ErrApplicationExists
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// ExistsByUserID checks whether the user already has an application
func (r *ApplicationRepository) ExistsByUserID(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1)`,
		userID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}

	return exists, nil
}

// GetByUserID retrieves the application owned by the user
func (r *ApplicationRepository) GetByUserID(ctx context.Context, userID int64) (*models.Application, error) {
	app := &models.Application{}
	row := r.db.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM applications a
		WHERE a.user_id = $1`, userID)

	if err := scanApplication(row, app); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// GetByID retrieves an application with its owner and reviewer
// resolved to public user fields.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	app := &models.Application{}
	var (
		owner        models.UserSummary
		reviewerID   *int64
		reviewerName *string
		reviewerMail *string
	)

	row := r.db.QueryRow(ctx, `
		SELECT `+applicationColumns+`,
			u.id, u.full_name, u.email, u.department, u.phone, u.roll_number,
			rv.id, rv.full_name, rv.email
		FROM applications a
		JOIN users u ON a.user_id = u.id
		LEFT JOIN users rv ON a.reviewed_by = rv.id
		WHERE a.id = $1`, id)

	err := row.Scan(
		&app.ID, &app.UserID, &app.Motivation, &app.Skills, &app.PreviousExperience,
		&app.Status, &app.AdminNotes, &app.StatusUpdatedAt, &app.ReviewedByID,
		&app.Course, &app.CurrentRound, &app.CreatedAt, &app.UpdatedAt,
		&owner.ID, &owner.FullName, &owner.Email, &owner.Department, &owner.Phone, &owner.RollNumber,
		&reviewerID, &reviewerName, &reviewerMail)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	app.User = &owner
	if reviewerID != nil {
		app.ReviewedBy = &models.UserSummary{ID: *reviewerID, FullName: *reviewerName, Email: *reviewerMail}
	}

	return app, nil
}

// List retrieves a page of applications matching the filter, newest
// first, with their owners resolved to public user fields. Status,
// department and search narrow the result together (AND).
func (r *ApplicationRepository) List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]models.Application, int64, error) {
	baseSelect := r.sb.Select(
		"a.id", "a.user_id", "a.motivation", "a.skills", "a.previous_experience",
		"a.status", "a.admin_notes", "a.status_updated_at", "a.reviewed_by",
		"a.course", "a.current_round", "a.created_at", "a.updated_at",
		"u.id", "u.full_name", "u.email", "u.department", "u.phone", "u.roll_number",
	).
		From("applications a").
		Join("users u ON a.user_id = u.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("applications a").
		Join("users u ON a.user_id = u.id")

	whereCondition := squirrel.And{}
	if filter.Status != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"a.status": filter.Status})
	}
	if filter.Department != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"u.department": filter.Department})
	}
	if filter.Search != "" {
		term := "%" + strings.TrimSpace(filter.Search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"u.full_name": term},
			squirrel.ILike{"u.email": term},
		})
	}

	baseSelect = baseSelect.Where(whereCondition)
	countSelect = countSelect.Where(whereCondition)

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count applications SQL")
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count applications query")
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	if total == 0 {
		return []models.Application{}, 0, nil
	}

	baseSelect = baseSelect.OrderBy("a.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, 0, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var app models.Application
		var owner models.UserSummary

		err := rows.Scan(
			&app.ID, &app.UserID, &app.Motivation, &app.Skills, &app.PreviousExperience,
			&app.Status, &app.AdminNotes, &app.StatusUpdatedAt, &app.ReviewedByID,
			&app.Course, &app.CurrentRound, &app.CreatedAt, &app.UpdatedAt,
			&owner.ID, &owner.FullName, &owner.Email, &owner.Department, &owner.Phone, &owner.RollNumber)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}

		app.User = &owner
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, total, nil
}

// UpdateStatus sets the status, admin notes and reviewer, refreshing
// status_updated_at as a side effect of the change.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, adminNotes string, reviewedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $1, admin_notes = $2, reviewed_by = $3, status_updated_at = NOW(), updated_at = NOW()
		WHERE id = $4`,
		status, adminNotes, reviewedBy, id)

	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// Delete removes the application; tasks and rounds cascade away with it.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM applications WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// CountByStatus returns application counts grouped by status
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM applications
		GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int64)
	for rows.Next() {
		var status models.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}

	return counts, nil
}

// Recent returns the most recently created applications with their
// owners resolved to public user fields.
func (r *ApplicationRepository) Recent(ctx context.Context, limit int) ([]models.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
			u.id, u.full_name, u.email, u.department, u.phone, u.roll_number
		FROM applications a
		JOIN users u ON a.user_id = u.id
		ORDER BY a.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent applications: %w", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var app models.Application
		var owner models.UserSummary

		err := rows.Scan(
			&app.ID, &app.UserID, &app.Motivation, &app.Skills, &app.PreviousExperience,
			&app.Status, &app.AdminNotes, &app.StatusUpdatedAt, &app.ReviewedByID,
			&app.Course, &app.CurrentRound, &app.CreatedAt, &app.UpdatedAt,
			&owner.ID, &owner.FullName, &owner.Email, &owner.Department, &owner.Phone, &owner.RollNumber)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent application row: %w", err)
		}

		app.User = &owner
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent application rows: %w", err)
	}

	return apps, nil
}
