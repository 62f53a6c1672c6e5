package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
)

type fakeSessionRepo struct {
	sessions map[int]*models.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int]*models.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	session.ID = r.nextID
	r.nextID++
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int) (*models.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) List(_ context.Context, _ repositories.SessionListFilter) ([]models.Session, error) {
	out := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *models.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repositories.ErrSessionNotFound
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

type fakeAttendanceCounts struct {
	repositories.AttendanceRepository
	total   int
	present int
}

func (r *fakeAttendanceCounts) CountBySession(_ context.Context, _ int) (int, int, error) {
	return r.total, r.present, nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	users map[int]*models.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func newSessionServiceForTest(t *testing.T) (SessionService, *fakeSessionRepo, *fakeAttendanceCounts) {
	t.Helper()
	sessionRepo := newFakeSessionRepo()
	attendanceRepo := &fakeAttendanceCounts{}
	userRepo := &fakeUserRepo{users: map[int]*models.User{
		7: {ID: 7, Role: models.RoleCoach},
		8: {ID: 8, Role: models.RoleManager},
	}}
	return NewSessionService(sessionRepo, attendanceRepo, userRepo), sessionRepo, attendanceRepo
}

func TestSessionCreateComputesPlannedDuration(t *testing.T) {
	svc, _, _ := newSessionServiceForTest(t)

	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	session, err := svc.Create(context.Background(), CreateSessionInput{
		Title:          "After-school practice",
		SessionType:    models.SessionTypeSchool,
		Location:       "City ground",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(90 * time.Minute),
		CoachID:        7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.DurationHours == nil || *session.DurationHours != 1.5 {
		t.Fatalf("expected planned duration 1.5h, got %v", session.DurationHours)
	}
}

func TestSessionCreateRejectsNonCoach(t *testing.T) {
	svc, _, _ := newSessionServiceForTest(t)

	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	input := CreateSessionInput{
		Title:          "Practice",
		SessionType:    models.SessionTypeCommunity,
		Location:       "Park",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		CoachID:        8,
	}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for manager as coach, got %v", err)
	}

	input.CoachID = 99
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrCoachNotFound) {
		t.Fatalf("expected ErrCoachNotFound for unknown coach, got %v", err)
	}
}

func TestSessionStartEndLifecycle(t *testing.T) {
	svc, _, _ := newSessionServiceForTest(t)

	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	session, err := svc.Create(context.Background(), CreateSessionInput{
		Title:          "Practice",
		SessionType:    models.SessionTypeSchool,
		Location:       "Ground",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		CoachID:        7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.End(context.Background(), session.ID); !errors.Is(err, ErrSessionNotStarted) {
		t.Fatalf("expected ErrSessionNotStarted before start, got %v", err)
	}

	started, err := svc.Start(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !started.IsActive || started.ActualStart == nil {
		t.Fatalf("expected started session to be active with actual start set")
	}

	ended, err := svc.End(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if ended.IsActive || !ended.IsCompleted {
		t.Fatalf("expected ended session to be inactive and completed")
	}
	if ended.ActualEnd == nil || ended.DurationHours == nil {
		t.Fatalf("expected actual end and delivered duration to be set")
	}

	if _, err := svc.End(context.Background(), session.ID); !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Fatalf("expected ErrSessionAlreadyEnded on second end, got %v", err)
	}
	if _, err := svc.Start(context.Background(), session.ID); !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Fatalf("expected ErrSessionAlreadyEnded when restarting ended session, got %v", err)
	}
}

func TestSessionAttendanceSummary(t *testing.T) {
	svc, _, attendanceRepo := newSessionServiceForTest(t)

	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	session, err := svc.Create(context.Background(), CreateSessionInput{
		Title:          "Practice",
		SessionType:    models.SessionTypeSchool,
		Location:       "Ground",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		CoachID:        7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	attendanceRepo.total = 20
	attendanceRepo.present = 15

	summary, err := svc.AttendanceSummary(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("AttendanceSummary: %v", err)
	}
	if summary.TotalMarked != 20 || summary.PresentCount != 15 || summary.AbsentCount != 5 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.PresenceRate != 75.0 {
		t.Fatalf("expected presence rate 75.0, got %v", summary.PresenceRate)
	}
}
