package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/pkg/apperrors"
	"github.com/ignitte/induction/internal/pkg/dberrors"
)

const userColumns = `id, full_name, email, password, role, department, phone, roll_number,
	profile_picture, refresh_token, is_super_admin, created_at, updated_at`

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.Password, &user.Role,
		&user.Department, &user.Phone, &user.RollNumber, &user.ProfilePicture,
		&user.RefreshToken, &user.IsSuperAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}
	return user, nil
}

// CreateUser creates a new user and returns its id. Email uniqueness
// is backed by the users_email_key constraint.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password, role, department, phone, roll_number, profile_picture, is_super_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		user.FullName, user.Email, user.Password, user.Role, user.Department,
		user.Phone, user.RollNumber, user.ProfilePicture, user.IsSuperAdmin).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`, email)
	return scanUser(row)
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// EmailOrPhoneExists checks if either value is already used by any user
func (r *UserRepository) EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email/phone: %w", err)
	}

	return exists, nil
}

// UpdateRefreshToken stores the currently valid refresh token for the
// user, or clears it when token is nil. Only the most recently stored
// token is accepted on refresh.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET refresh_token = $1, updated_at = NOW()
		WHERE id = $2`,
		token, userID)

	if err != nil {
		return fmt.Errorf("error updating refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE id = $2`,
		hashedPassword, userID)

	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
