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
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAttendanceConflict  = errors.New("attendance already marked for this child and session")
	ErrAttendanceRefBroken = errors.New("attendance session, child or coach invalid")
)

type AttendanceListFilter struct {
	SessionID *int
	ChildID   *int
	CoachID   *int
	Limit     int
	Offset    int
}

type AttendanceRepository interface {
	Create(ctx context.Context, exec SQLExecutor, record *models.Attendance) error
	GetByID(ctx context.Context, id int) (*models.Attendance, error)
	List(ctx context.Context, filter AttendanceListFilter) ([]models.Attendance, error)
	ListByChild(ctx context.Context, childID int) ([]models.Attendance, error)
	CountBySession(ctx context.Context, sessionID int) (total int, present int, err error)
	Update(ctx context.Context, record *models.Attendance) error
	Delete(ctx context.Context, id int) error
}

type postgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &postgresAttendanceRepository{db: db}
}

func (r *postgresAttendanceRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const attendanceColumns = `id, session_id, child_id, coach_id, present, marked_at, notes`

func (r *postgresAttendanceRepository) scanAttendance(row interface{ Scan(...interface{}) error }) (*models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(&a.ID, &a.SessionID, &a.ChildID, &a.CoachID, &a.Present, &a.MarkedAt, &a.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresAttendanceRepository) Create(ctx context.Context, exec SQLExecutor, record *models.Attendance) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO attendance (session_id, child_id, coach_id, present, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, marked_at`
	err := executor.QueryRowContext(ctx, query,
		record.SessionID, record.ChildID, record.CoachID, record.Present, record.Notes,
	).Scan(&record.ID, &record.MarkedAt)
	return r.handleAttendanceError(err)
}

func (r *postgresAttendanceRepository) GetByID(ctx context.Context, id int) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`
	return r.scanAttendance(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresAttendanceRepository) List(ctx context.Context, filter AttendanceListFilter) ([]models.Attendance, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + attendanceColumns + ` FROM attendance WHERE 1=1`)

	args := make([]interface{}, 0, 5)
	placeholder := 1

	if filter.SessionID != nil {
		queryBuilder.WriteString(" AND session_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.SessionID)
		placeholder++
	}
	if filter.ChildID != nil {
		queryBuilder.WriteString(" AND child_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.ChildID)
		placeholder++
	}
	if filter.CoachID != nil {
		queryBuilder.WriteString(" AND coach_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.CoachID)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY marked_at DESC, id DESC")

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
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := make([]models.Attendance, 0)
	for rows.Next() {
		a, errScan := r.scanAttendance(rows)
		if errScan != nil {
			return nil, errScan
		}
		records = append(records, *a)
	}
	return records, rows.Err()
}

func (r *postgresAttendanceRepository) ListByChild(ctx context.Context, childID int) ([]models.Attendance, error) {
	return r.List(ctx, AttendanceListFilter{ChildID: &childID})
}

func (r *postgresAttendanceRepository) CountBySession(ctx context.Context, sessionID int) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE present)
		FROM attendance
		WHERE session_id = $1`
	var total, present int
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&total, &present); err != nil {
		return 0, 0, fmt.Errorf("failed to count attendance for session %d: %w", sessionID, err)
	}
	return total, present, nil
}

func (r *postgresAttendanceRepository) Update(ctx context.Context, record *models.Attendance) error {
	query := `UPDATE attendance SET present = $1, notes = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, record.Present, record.Notes, record.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAttendanceNotFound)
}

func (r *postgresAttendanceRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAttendanceNotFound)
}

func (r *postgresAttendanceRepository) handleAttendanceError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "attendance_session_id_child_id_key":
			return ErrAttendanceConflict
		case "attendance_session_id_fkey", "attendance_child_id_fkey", "attendance_coach_id_fkey":
			return ErrAttendanceRefBroken
		}
	}
	return err
}
