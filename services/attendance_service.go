package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
)

type AttendanceService interface {
	Mark(ctx context.Context, input MarkAttendanceInput) (*models.Attendance, error)
	// BulkMark records a whole register for one session in a single
	// transaction; either every row lands or none do.
	BulkMark(ctx context.Context, input BulkMarkInput) ([]models.Attendance, error)
	GetByID(ctx context.Context, id int) (*models.Attendance, error)
	List(ctx context.Context, filter repositories.AttendanceListFilter) ([]models.Attendance, error)
	Update(ctx context.Context, id int, input UpdateAttendanceInput) (*models.Attendance, error)
	Delete(ctx context.Context, id int) error
}

type MarkAttendanceInput struct {
	SessionID int     `json:"session_id"`
	ChildID   int     `json:"child_id"`
	CoachID   int     `json:"coach_id"`
	Present   bool    `json:"present"`
	Notes     *string `json:"notes"`
}

type BulkMarkInput struct {
	SessionID int              `json:"session_id"`
	CoachID   int              `json:"coach_id"`
	Records   []BulkMarkRecord `json:"records"`
}

type BulkMarkRecord struct {
	ChildID int     `json:"child_id"`
	Present bool    `json:"present"`
	Notes   *string `json:"notes"`
}

type UpdateAttendanceInput struct {
	Present *bool   `json:"present"`
	Notes   *string `json:"notes"`
}

type attendanceService struct {
	db             *sql.DB
	attendanceRepo repositories.AttendanceRepository
	sessionRepo    repositories.SessionRepository
}

func NewAttendanceService(
	db *sql.DB,
	attendanceRepo repositories.AttendanceRepository,
	sessionRepo repositories.SessionRepository,
) AttendanceService {
	return &attendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
	}
}

func (s *attendanceService) Mark(ctx context.Context, input MarkAttendanceInput) (*models.Attendance, error) {
	record := &models.Attendance{
		SessionID: input.SessionID,
		ChildID:   input.ChildID,
		CoachID:   input.CoachID,
		Present:   input.Present,
		MarkedAt:  time.Now().UTC(),
		Notes:     input.Notes,
	}
	if err := s.attendanceRepo.Create(ctx, nil, record); err != nil {
		return nil, s.mapCreateError(err)
	}
	return record, nil
}

func (s *attendanceService) BulkMark(ctx context.Context, input BulkMarkInput) ([]models.Attendance, error) {
	if len(input.Records) == 0 {
		return nil, fmt.Errorf("%w: no attendance records provided", ErrValidationFailed)
	}
	if _, err := s.sessionRepo.GetByID(ctx, input.SessionID); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", input.SessionID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	records := make([]models.Attendance, 0, len(input.Records))
	for _, entry := range input.Records {
		record := models.Attendance{
			SessionID: input.SessionID,
			ChildID:   entry.ChildID,
			CoachID:   input.CoachID,
			Present:   entry.Present,
			MarkedAt:  now,
			Notes:     entry.Notes,
		}
		if err := s.attendanceRepo.Create(ctx, tx, &record); err != nil {
			return nil, s.mapCreateError(err)
		}
		records = append(records, record)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attendance register: %w", err)
	}
	return records, nil
}

func (s *attendanceService) GetByID(ctx context.Context, id int) (*models.Attendance, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAttendanceNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record %d: %w", id, err)
	}
	return record, nil
}

func (s *attendanceService) List(ctx context.Context, filter repositories.AttendanceListFilter) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

func (s *attendanceService) Update(ctx context.Context, id int, input UpdateAttendanceInput) (*models.Attendance, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Present != nil {
		record.Present = *input.Present
		record.MarkedAt = time.Now().UTC()
	}
	if input.Notes != nil {
		record.Notes = input.Notes
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record %d: %w", id, err)
	}
	return record, nil
}

func (s *attendanceService) Delete(ctx context.Context, id int) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAttendanceNotFound) {
			return ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance record %d: %w", id, err)
	}
	return nil
}

func (s *attendanceService) mapCreateError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAttendanceConflict):
		return ErrAttendanceConflict
	case errors.Is(err, repositories.ErrAttendanceRefBroken):
		return fmt.Errorf("%w: session, child or coach does not exist", ErrValidationFailed)
	}
	return fmt.Errorf("failed to create attendance record: %w", err)
}
