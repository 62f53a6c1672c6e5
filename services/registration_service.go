package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
)

type RegistrationService interface {
	Register(ctx context.Context, input CreateRegistrationInput) (*models.PlayerRegistration, error)
	GetByID(ctx context.Context, id int) (*models.PlayerRegistration, error)
	List(ctx context.Context, filter repositories.RegistrationListFilter) ([]models.PlayerRegistration, error)
	Update(ctx context.Context, id int, input UpdateRegistrationInput) (*models.PlayerRegistration, error)
	// Approve confirms a pending registration and records who approved it.
	Approve(ctx context.Context, id int, approvedBy int) (*models.PlayerRegistration, error)
	Delete(ctx context.Context, id int) error
}

type CreateRegistrationInput struct {
	TournamentID int  `json:"tournament_id"`
	ChildID      int  `json:"child_id"`
	TeamID       *int `json:"team_id"`

	JerseyNumber *int    `json:"jersey_number"`
	JerseySize   *string `json:"jersey_size"`

	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`

	DietaryRestrictions *string `json:"dietary_restrictions"`
	MedicalConditions   *string `json:"medical_conditions"`
	Notes               *string `json:"notes"`
}

type UpdateRegistrationInput struct {
	TeamID       *int    `json:"team_id"`
	JerseyNumber *int    `json:"jersey_number"`
	JerseySize   *string `json:"jersey_size"`

	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`

	DietaryRestrictions *string `json:"dietary_restrictions"`
	MedicalConditions   *string `json:"medical_conditions"`
	Notes               *string `json:"notes"`
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository) RegistrationService {
	return &registrationService{registrationRepo: registrationRepo}
}

func (s *registrationService) Register(ctx context.Context, input CreateRegistrationInput) (*models.PlayerRegistration, error) {
	registration := &models.PlayerRegistration{
		TournamentID:     input.TournamentID,
		ChildID:          input.ChildID,
		TeamID:           input.TeamID,
		RegistrationDate: time.Now().UTC(),
		JerseyNumber:     input.JerseyNumber,
		JerseySize:       input.JerseySize,

		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,

		DietaryRestrictions: input.DietaryRestrictions,
		MedicalConditions:   input.MedicalConditions,
		Notes:               input.Notes,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationRefInvalid):
			return nil, fmt.Errorf("%w: tournament, child or team does not exist", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return registration, nil
}

func (s *registrationService) GetByID(ctx context.Context, id int) (*models.PlayerRegistration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration %d: %w", id, err)
	}
	return registration, nil
}

func (s *registrationService) List(ctx context.Context, filter repositories.RegistrationListFilter) ([]models.PlayerRegistration, error) {
	registrations, err := s.registrationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}

func (s *registrationService) Update(ctx context.Context, id int, input UpdateRegistrationInput) (*models.PlayerRegistration, error) {
	registration, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TeamID != nil {
		registration.TeamID = input.TeamID
	}
	if input.JerseyNumber != nil {
		registration.JerseyNumber = input.JerseyNumber
	}
	if input.JerseySize != nil {
		registration.JerseySize = input.JerseySize
	}
	if input.EmergencyContactName != nil {
		registration.EmergencyContactName = input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		registration.EmergencyContactPhone = input.EmergencyContactPhone
	}
	if input.DietaryRestrictions != nil {
		registration.DietaryRestrictions = input.DietaryRestrictions
	}
	if input.MedicalConditions != nil {
		registration.MedicalConditions = input.MedicalConditions
	}
	if input.Notes != nil {
		registration.Notes = input.Notes
	}

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationRefInvalid) {
			return nil, fmt.Errorf("%w: tournament, child or team does not exist", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to update registration %d: %w", id, err)
	}
	return registration, nil
}

func (s *registrationService) Approve(ctx context.Context, id int, approvedBy int) (*models.PlayerRegistration, error) {
	registration, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration.IsApproved {
		return nil, ErrRegistrationApproved
	}

	now := time.Now().UTC()
	registration.IsApproved = true
	registration.ApprovalDate = &now
	registration.ApprovedBy = &approvedBy

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, fmt.Errorf("failed to approve registration %d: %w", id, err)
	}
	return registration, nil
}

func (s *registrationService) Delete(ctx context.Context, id int) error {
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}
	return nil
}
