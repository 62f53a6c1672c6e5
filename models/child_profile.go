package models

import "time"

type ChildProfile struct {
	ID          int        `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender      *string    `json:"gender,omitempty" db:"gender"`

	School    *string `json:"school,omitempty" db:"school"`
	Community *string `json:"community,omitempty" db:"community"`

	GuardianName  *string `json:"guardian_name,omitempty" db:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone,omitempty" db:"guardian_phone"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}

// ProfileTransfer is one entry in a child's programme transfer history: an
// append-only log with its own identity, queried in chronological order.
type ProfileTransfer struct {
	ID            int       `json:"id" db:"id"`
	ChildID       int       `json:"child_id" db:"child_id"`
	FromSchool    *string   `json:"from_school,omitempty" db:"from_school"`
	ToSchool      *string   `json:"to_school,omitempty" db:"to_school"`
	FromCommunity *string   `json:"from_community,omitempty" db:"from_community"`
	ToCommunity   *string   `json:"to_community,omitempty" db:"to_community"`
	Reason        *string   `json:"reason,omitempty" db:"reason"`
	TransferredAt time.Time `json:"transferred_at" db:"transferred_at"`
	RecordedBy    *int      `json:"recorded_by,omitempty" db:"recorded_by"`
}
