// Package stats holds the derived-statistics core of the programme backend:
// match result processing, standings deltas, and the on-read aggregates for
// tournaments, child profiles and assessment progress. Everything here is a
// pure function over records the caller has already loaded; persistence is
// the caller's job.
package stats

import "github.com/erzer12/y-ultimate/models"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// TeamDelta is the standings contribution of one completed match for one
// team. Applying a delta bumps exactly one of wins/losses/draws, so a team's
// counters stay in step with the number of completed matches it played in —
// as long as each match contributes exactly one delta per team.
type TeamDelta struct {
	TeamID        int     `json:"team_id"`
	Outcome       Outcome `json:"outcome"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	SpiritScore   int     `json:"spirit_score"`
}

// ComputeDeltas derives the per-team standings deltas for a completed match.
// It does not guard against repeated application; that guard is the
// completion transition check in SubmitResult.
func ComputeDeltas(m models.Match) (TeamDelta, TeamDelta) {
	d1 := TeamDelta{
		TeamID:        m.Team1ID,
		Outcome:       outcomeFor(m.Team1ID, m.Team2ID, m.WinnerID),
		PointsFor:     m.Team1Score,
		PointsAgainst: m.Team2Score,
		SpiritScore:   truncSpirit(m.Team1SpiritScore),
	}
	d2 := TeamDelta{
		TeamID:        m.Team2ID,
		Outcome:       outcomeFor(m.Team2ID, m.Team1ID, m.WinnerID),
		PointsFor:     m.Team2Score,
		PointsAgainst: m.Team1Score,
		SpiritScore:   truncSpirit(m.Team2SpiritScore),
	}
	return d1, d2
}

// Apply returns a copy of team with the delta's counters added. Both deltas
// from one match must be persisted atomically with the match itself.
func Apply(team models.Team, d TeamDelta) models.Team {
	switch d.Outcome {
	case OutcomeWin:
		team.Wins++
	case OutcomeLoss:
		team.Losses++
	default:
		team.Draws++
	}
	team.PointsFor += d.PointsFor
	team.PointsAgainst += d.PointsAgainst
	team.SpiritScoreTotal += d.SpiritScore
	return team
}

func outcomeFor(teamID, opponentID int, winnerID *int) Outcome {
	if winnerID == nil {
		return OutcomeDraw
	}
	switch *winnerID {
	case teamID:
		return OutcomeWin
	case opponentID:
		return OutcomeLoss
	}
	return OutcomeDraw
}

func truncSpirit(score *float64) int {
	if score == nil {
		return 0
	}
	return int(*score)
}
