package services

import (
	"context"
	"errors"
	"testing"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
)

type fakeRegistrationRepo struct {
	repositories.RegistrationRepository
	registrations map[int]*models.PlayerRegistration
	nextID        int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: make(map[int]*models.PlayerRegistration), nextID: 1}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration *models.PlayerRegistration) error {
	for _, existing := range r.registrations {
		if existing.TournamentID == registration.TournamentID && existing.ChildID == registration.ChildID {
			return repositories.ErrRegistrationConflict
		}
	}
	registration.ID = r.nextID
	r.nextID++
	copied := *registration
	r.registrations[registration.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) GetByID(_ context.Context, id int) (*models.PlayerRegistration, error) {
	registration, ok := r.registrations[id]
	if !ok {
		return nil, repositories.ErrRegistrationNotFound
	}
	copied := *registration
	return &copied, nil
}

func (r *fakeRegistrationRepo) Update(_ context.Context, registration *models.PlayerRegistration) error {
	if _, ok := r.registrations[registration.ID]; !ok {
		return repositories.ErrRegistrationNotFound
	}
	copied := *registration
	r.registrations[registration.ID] = &copied
	return nil
}

func TestRegistrationApprove(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := NewRegistrationService(repo)

	registration, err := svc.Register(context.Background(), CreateRegistrationInput{
		TournamentID: 1,
		ChildID:      42,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registration.IsApproved {
		t.Fatal("new registration must start unapproved")
	}

	approved, err := svc.Approve(context.Background(), registration.ID, 9)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !approved.IsApproved {
		t.Fatal("expected registration to be approved")
	}
	if approved.ApprovalDate == nil {
		t.Fatal("expected approval date to be set")
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != 9 {
		t.Fatalf("expected approver 9, got %v", approved.ApprovedBy)
	}

	if _, err := svc.Approve(context.Background(), registration.ID, 9); !errors.Is(err, ErrRegistrationApproved) {
		t.Fatalf("expected ErrRegistrationApproved on second approve, got %v", err)
	}
}

func TestRegistrationDuplicateChild(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := NewRegistrationService(repo)

	input := CreateRegistrationInput{TournamentID: 1, ChildID: 42}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrRegistrationConflict) {
		t.Fatalf("expected ErrRegistrationConflict, got %v", err)
	}
}
