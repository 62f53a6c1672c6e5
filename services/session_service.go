package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/stats"
)

type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*models.Session, error)
	GetByID(ctx context.Context, id int) (*models.Session, error)
	List(ctx context.Context, filter repositories.SessionListFilter) ([]models.Session, error)
	Update(ctx context.Context, id int, input UpdateSessionInput) (*models.Session, error)
	// Start marks the session in progress and records the actual start time.
	Start(ctx context.Context, id int) (*models.Session, error)
	// End records the actual end time, computes the delivered duration and
	// completes the session.
	End(ctx context.Context, id int) (*models.Session, error)
	// AttendanceSummary reports how many children were marked present out of
	// the records taken for the session.
	AttendanceSummary(ctx context.Context, id int) (*SessionAttendanceSummary, error)
	Delete(ctx context.Context, id int) error
}

type CreateSessionInput struct {
	Title          string             `json:"title"`
	SessionType    models.SessionType `json:"session_type"`
	Location       string             `json:"location"`
	School         *string            `json:"school"`
	Community      *string            `json:"community"`
	ScheduledStart time.Time          `json:"scheduled_start"`
	ScheduledEnd   time.Time          `json:"scheduled_end"`
	CoachID        int                `json:"coach_id"`
	TravelHours    float64            `json:"travel_hours"`
	Notes          *string            `json:"notes"`
}

type UpdateSessionInput struct {
	Title          *string    `json:"title"`
	Location       *string    `json:"location"`
	School         *string    `json:"school"`
	Community      *string    `json:"community"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end"`
	TravelHours    *float64   `json:"travel_hours"`
	Notes          *string    `json:"notes"`
}

type SessionAttendanceSummary struct {
	SessionID    int     `json:"session_id"`
	TotalMarked  int     `json:"total_marked"`
	PresentCount int     `json:"present_count"`
	AbsentCount  int     `json:"absent_count"`
	PresenceRate float64 `json:"presence_rate"`
}

type sessionService struct {
	sessionRepo    repositories.SessionRepository
	attendanceRepo repositories.AttendanceRepository
	userRepo       repositories.UserRepository
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	attendanceRepo repositories.AttendanceRepository,
	userRepo repositories.UserRepository,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

func (s *sessionService) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: session title", ErrNameRequired)
	}
	if !input.ScheduledStart.Before(input.ScheduledEnd) {
		return nil, ErrInvalidDateRange
	}
	if err := s.ensureCoach(ctx, input.CoachID); err != nil {
		return nil, err
	}

	planned := stats.DurationHours(input.ScheduledStart, input.ScheduledEnd)
	session := &models.Session{
		Title:          input.Title,
		SessionType:    input.SessionType,
		Location:       input.Location,
		School:         input.School,
		Community:      input.Community,
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		CoachID:        input.CoachID,
		DurationHours:  &planned,
		TravelHours:    input.TravelHours,
		Notes:          input.Notes,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, filter repositories.SessionListFilter) ([]models.Session, error) {
	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) Update(ctx context.Context, id int, input UpdateSessionInput) (*models.Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Location != nil {
		session.Location = *input.Location
	}
	if input.School != nil {
		session.School = input.School
	}
	if input.Community != nil {
		session.Community = input.Community
	}
	if input.ScheduledStart != nil {
		session.ScheduledStart = *input.ScheduledStart
	}
	if input.ScheduledEnd != nil {
		session.ScheduledEnd = *input.ScheduledEnd
	}
	if !session.ScheduledStart.Before(session.ScheduledEnd) {
		return nil, ErrInvalidDateRange
	}
	if input.ActualStart != nil {
		session.ActualStart = input.ActualStart
	}
	if input.ActualEnd != nil {
		session.ActualEnd = input.ActualEnd
	}
	if input.TravelHours != nil {
		session.TravelHours = *input.TravelHours
	}
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	// The delivered duration tracks actual times once both exist, otherwise
	// the scheduled window.
	var hours float64
	if session.ActualStart != nil && session.ActualEnd != nil {
		hours = stats.DurationHours(*session.ActualStart, *session.ActualEnd)
	} else {
		hours = stats.DurationHours(session.ScheduledStart, session.ScheduledEnd)
	}
	session.DurationHours = &hours

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session %d: %w", id, err)
	}
	return session, nil
}

func (s *sessionService) Start(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrSessionAlreadyEnded
	}

	now := time.Now().UTC()
	session.ActualStart = &now
	session.IsActive = true

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session %d: %w", id, err)
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrSessionAlreadyEnded
	}
	if session.ActualStart == nil {
		return nil, ErrSessionNotStarted
	}

	now := time.Now().UTC()
	session.ActualEnd = &now
	hours := stats.DurationHours(*session.ActualStart, now)
	session.DurationHours = &hours
	session.IsActive = false
	session.IsCompleted = true

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to end session %d: %w", id, err)
	}
	return session, nil
}

func (s *sessionService) AttendanceSummary(ctx context.Context, id int) (*SessionAttendanceSummary, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	total, present, err := s.attendanceRepo.CountBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance for session %d: %w", id, err)
	}

	summary := &SessionAttendanceSummary{
		SessionID:    id,
		TotalMarked:  total,
		PresentCount: present,
		AbsentCount:  total - present,
	}
	if total > 0 {
		summary.PresenceRate = float64(present) / float64(total) * 100
	}
	return summary, nil
}

func (s *sessionService) Delete(ctx context.Context, id int) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}
	return nil
}

func (s *sessionService) ensureCoach(ctx context.Context, coachID int) error {
	user, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrCoachNotFound
		}
		return fmt.Errorf("failed to verify coach %d: %w", coachID, err)
	}
	if user.Role != models.RoleCoach {
		return fmt.Errorf("%w: user %d is not a coach", ErrValidationFailed, coachID)
	}
	return nil
}
