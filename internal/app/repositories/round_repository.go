package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ignitte/induction/internal/app/models"
	"github.com/ignitte/induction/internal/pkg/logger"
)

// RoundRepository handles interview round database operations
type RoundRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoundRepository creates a new RoundRepository
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create records an interview round on an application
func (r *RoundRepository) Create(ctx context.Context, round *models.Round) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO rounds (application_id, round_name, interviewer_id, feedback, verdict, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		round.ApplicationID, round.RoundName, round.InterviewerID,
		round.Feedback, round.Verdict, round.Date).Scan(&round.ID)

	if err != nil {
		return fmt.Errorf("error creating round: %w", err)
	}

	return nil
}

// ListByApplicationIDs retrieves the rounds of the given applications
// in date order, keyed by application id.
func (r *RoundRepository) ListByApplicationIDs(ctx context.Context, applicationIDs []int64) (map[int64][]models.Round, error) {
	roundsByApp := make(map[int64][]models.Round, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return roundsByApp, nil
	}

	query := r.sb.Select(
		"id", "application_id", "round_name", "interviewer_id", "feedback", "verdict", "date",
	).
		From("rounds").
		Where(squirrel.Eq{"application_id": applicationIDs}).
		OrderBy("date ASC", "id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list rounds SQL")
		return nil, fmt.Errorf("failed to build list rounds query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rounds: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var round models.Round
		err := rows.Scan(
			&round.ID, &round.ApplicationID, &round.RoundName, &round.InterviewerID,
			&round.Feedback, &round.Verdict, &round.Date)
		if err != nil {
			return nil, fmt.Errorf("error scanning round row: %w", err)
		}

		roundsByApp[round.ApplicationID] = append(roundsByApp[round.ApplicationID], round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}

	return roundsByApp, nil
}
