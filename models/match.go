package models

import "time"

// Match round labels as used in tournament scheduling. Stored as free text
// in the DB; these are the values the frontend sends.
const (
	RoundPoolPlay     = "pool_play"
	RoundQuarterfinal = "quarterfinal"
	RoundSemifinal    = "semifinal"
	RoundFinal        = "final"
)

type Match struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	MatchNumber  int `json:"match_number" db:"match_number"`

	Round *string `json:"round,omitempty" db:"round"`
	Pool  *string `json:"pool,omitempty" db:"pool"`

	Team1ID int `json:"team1_id" db:"team1_id"`
	Team2ID int `json:"team2_id" db:"team2_id"`

	ScheduledTime *time.Time `json:"scheduled_time,omitempty" db:"scheduled_time"`
	Field         *string    `json:"field,omitempty" db:"field"`

	Team1Score int  `json:"team1_score" db:"team1_score"`
	Team2Score int  `json:"team2_score" db:"team2_score"`
	WinnerID   *int `json:"winner_id,omitempty" db:"winner_id"`

	// Spirit scores on the 0-5 sportsmanship scale, nil until submitted.
	Team1SpiritScore *float64 `json:"team1_spirit_score,omitempty" db:"team1_spirit_score"`
	Team2SpiritScore *float64 `json:"team2_spirit_score,omitempty" db:"team2_spirit_score"`

	// IsCompleted only ever transitions false -> true; the transition is the
	// event that triggers standings application.
	IsCompleted bool `json:"is_completed" db:"is_completed"`
	IsForfeit   bool `json:"is_forfeit" db:"is_forfeit"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Populated by the service layer for detail responses, not mapped.
	Team1Name  *string `json:"team1_name,omitempty" db:"-"`
	Team2Name  *string `json:"team2_name,omitempty" db:"-"`
	WinnerName *string `json:"winner_name,omitempty" db:"-"`
}
