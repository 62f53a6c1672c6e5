package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erzer12/y-ultimate/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionListFilter struct {
	CoachID     *int
	SessionType *models.SessionType
	IsActive    *bool
	IsCompleted *bool
	Limit       int
	Offset      int
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id int) (*models.Session, error)
	List(ctx context.Context, filter SessionListFilter) ([]models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id int) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

const sessionColumns = `id, title, session_type, location, school, community,
	scheduled_start, scheduled_end, actual_start, actual_end, coach_id,
	duration_hours, travel_hours, is_active, is_completed, notes, created_at`

func (r *postgresSessionRepository) scanSession(row interface{ Scan(...interface{}) error }) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID, &s.Title, &s.SessionType, &s.Location, &s.School, &s.Community,
		&s.ScheduledStart, &s.ScheduledEnd, &s.ActualStart, &s.ActualEnd, &s.CoachID,
		&s.DurationHours, &s.TravelHours, &s.IsActive, &s.IsCompleted, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions
			(title, session_type, location, school, community,
			 scheduled_start, scheduled_end, coach_id, duration_hours, travel_hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_active, is_completed, created_at`
	return r.db.QueryRowContext(ctx, query,
		session.Title, session.SessionType, session.Location, session.School, session.Community,
		session.ScheduledStart, session.ScheduledEnd, session.CoachID,
		session.DurationHours, session.TravelHours, session.Notes,
	).Scan(&session.ID, &session.IsActive, &session.IsCompleted, &session.CreatedAt)
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id int) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSessionRepository) List(ctx context.Context, filter SessionListFilter) ([]models.Session, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`)

	args := make([]interface{}, 0, 6)
	placeholder := 1

	if filter.CoachID != nil {
		queryBuilder.WriteString(" AND coach_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.CoachID)
		placeholder++
	}
	if filter.SessionType != nil {
		queryBuilder.WriteString(" AND session_type = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.SessionType)
		placeholder++
	}
	if filter.IsActive != nil {
		queryBuilder.WriteString(" AND is_active = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.IsActive)
		placeholder++
	}
	if filter.IsCompleted != nil {
		queryBuilder.WriteString(" AND is_completed = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.IsCompleted)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY scheduled_start DESC, id DESC")

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
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		s, errScan := r.scanSession(rows)
		if errScan != nil {
			return nil, errScan
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *postgresSessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `
		UPDATE sessions SET
			title = $1, session_type = $2, location = $3, school = $4, community = $5,
			scheduled_start = $6, scheduled_end = $7, actual_start = $8, actual_end = $9,
			coach_id = $10, duration_hours = $11, travel_hours = $12,
			is_active = $13, is_completed = $14, notes = $15
		WHERE id = $16`
	result, err := r.db.ExecContext(ctx, query,
		session.Title, session.SessionType, session.Location, session.School, session.Community,
		session.ScheduledStart, session.ScheduledEnd, session.ActualStart, session.ActualEnd,
		session.CoachID, session.DurationHours, session.TravelHours,
		session.IsActive, session.IsCompleted, session.Notes, session.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}
