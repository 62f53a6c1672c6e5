package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erzer12/y-ultimate/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
)

// MatchListFilter narrows ListMatches; nil fields mean no filtering.
type MatchListFilter struct {
	TournamentID *int
	IsCompleted  *bool
	Round        *string
	Limit        int
	Offset       int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetByIDForUpdate row-locks the match so concurrent result submissions
	// for the same match serialize on the database.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchListFilter) ([]models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, match_number, round, pool, team1_id, team2_id,
	scheduled_time, field, team1_score, team2_score, winner_id,
	team1_spirit_score, team2_spirit_score, is_completed, is_forfeit, created_at`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.MatchNumber, &m.Round, &m.Pool, &m.Team1ID, &m.Team2ID,
		&m.ScheduledTime, &m.Field, &m.Team1Score, &m.Team2Score, &m.WinnerID,
		&m.Team1SpiritScore, &m.Team2SpiritScore, &m.IsCompleted, &m.IsForfeit, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
			(tournament_id, match_number, round, pool, team1_id, team2_id,
			 scheduled_time, field, team1_score, team2_score, is_forfeit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_completed, created_at`
	err := executor.QueryRowContext(ctx, query,
		match.TournamentID, match.MatchNumber, match.Round, match.Pool,
		match.Team1ID, match.Team2ID, match.ScheduledTime, match.Field,
		match.Team1Score, match.Team2Score, match.IsForfeit,
	).Scan(&match.ID, &match.IsCompleted, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchListFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := make([]interface{}, 0, 5)
	placeholder := 1

	if filter.TournamentID != nil {
		queryBuilder.WriteString(" AND tournament_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.TournamentID)
		placeholder++
	}
	if filter.IsCompleted != nil {
		queryBuilder.WriteString(" AND is_completed = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.IsCompleted)
		placeholder++
	}
	if filter.Round != nil {
		queryBuilder.WriteString(" AND round = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Round)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY match_number ASC, id ASC")

	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(placeholder))
		args = append(args, filter.Limit)
		placeholder++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(placeholder))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	return r.List(ctx, MatchListFilter{TournamentID: &tournamentID})
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			match_number = $1, round = $2, pool = $3, scheduled_time = $4, field = $5,
			team1_score = $6, team2_score = $7, winner_id = $8,
			team1_spirit_score = $9, team2_spirit_score = $10,
			is_completed = $11, is_forfeit = $12
		WHERE id = $13`
	result, err := executor.ExecContext(ctx, query,
		match.MatchNumber, match.Round, match.Pool, match.ScheduledTime, match.Field,
		match.Team1Score, match.Team2Score, match.WinnerID,
		match.Team1SpiritScore, match.Team2SpiritScore,
		match.IsCompleted, match.IsForfeit, match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_team1_id_fkey", "matches_team2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
