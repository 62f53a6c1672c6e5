package models

import "time"

// Team carries the accumulated standings counters. The counters are only
// ever mutated by applying a standings delta for a completed match, so
// Wins+Losses+Draws always equals the number of completed matches the team
// played in.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CoachID      *int      `json:"coach_id,omitempty" db:"coach_id"`

	Wins             int `json:"wins" db:"wins"`
	Losses           int `json:"losses" db:"losses"`
	Draws            int `json:"draws" db:"draws"`
	PointsFor        int `json:"points_for" db:"points_for"`
	PointsAgainst    int `json:"points_against" db:"points_against"`
	SpiritScoreTotal int `json:"spirit_score_total" db:"spirit_score_total"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
