package models

import "time"

type SessionType string

const (
	SessionTypeSchool         SessionType = "school"
	SessionTypeCommunity      SessionType = "community"
	SessionTypeTournamentPrep SessionType = "tournament_prep"
)

type Session struct {
	ID          int         `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	SessionType SessionType `json:"session_type" db:"session_type"`
	Location    string      `json:"location" db:"location"`
	School      *string     `json:"school,omitempty" db:"school"`
	Community   *string     `json:"community,omitempty" db:"community"`

	ScheduledStart time.Time  `json:"scheduled_start" db:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end" db:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start,omitempty" db:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end,omitempty" db:"actual_end"`

	CoachID int `json:"coach_id" db:"coach_id"`

	DurationHours *float64 `json:"duration_hours,omitempty" db:"duration_hours"`
	TravelHours   float64  `json:"travel_hours" db:"travel_hours"`

	IsActive    bool    `json:"is_active" db:"is_active"`
	IsCompleted bool    `json:"is_completed" db:"is_completed"`
	Notes       *string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
