package models

import "time"

type Attendance struct {
	ID        int       `json:"id" db:"id"`
	SessionID int       `json:"session_id" db:"session_id"`
	ChildID   int       `json:"child_id" db:"child_id"`
	CoachID   int       `json:"coach_id" db:"coach_id"`
	Present   bool      `json:"present" db:"present"`
	MarkedAt  time.Time `json:"marked_at" db:"marked_at"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
}
