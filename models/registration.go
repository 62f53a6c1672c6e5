package models

import "time"

type PlayerRegistration struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	ChildID      int  `json:"child_id" db:"child_id"`
	TeamID       *int `json:"team_id,omitempty" db:"team_id"`

	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
	JerseyNumber     *int      `json:"jersey_number,omitempty" db:"jersey_number"`
	JerseySize       *string   `json:"jersey_size,omitempty" db:"jersey_size"`

	IsApproved   bool       `json:"is_approved" db:"is_approved"`
	ApprovalDate *time.Time `json:"approval_date,omitempty" db:"approval_date"`
	ApprovedBy   *int       `json:"approved_by,omitempty" db:"approved_by"`

	EmergencyContactName  *string `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`

	DietaryRestrictions *string `json:"dietary_restrictions,omitempty" db:"dietary_restrictions"`
	MedicalConditions   *string `json:"medical_conditions,omitempty" db:"medical_conditions"`
	Notes               *string `json:"notes,omitempty" db:"notes"`
}
