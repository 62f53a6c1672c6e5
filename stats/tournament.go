package stats

import "github.com/erzer12/y-ultimate/models"

// TournamentStats is an on-demand rollup over the records referencing one
// tournament. Nothing is cached: every call is a full scan of the snapshots
// the caller fetched, so the numbers are always consistent with those
// snapshots.
type TournamentStats struct {
	TournamentID          int `json:"tournament_id"`
	TotalTeams            int `json:"total_teams"`
	TotalMatches          int `json:"total_matches"`
	CompletedMatches      int `json:"completed_matches"`
	TotalRegistrations    int `json:"total_registrations"`
	ApprovedRegistrations int `json:"approved_registrations"`
}

func AggregateTournament(
	tournamentID int,
	teams []models.Team,
	matches []models.Match,
	registrations []models.PlayerRegistration,
) TournamentStats {
	s := TournamentStats{TournamentID: tournamentID}

	for _, t := range teams {
		if t.TournamentID == tournamentID {
			s.TotalTeams++
		}
	}
	for _, m := range matches {
		if m.TournamentID != tournamentID {
			continue
		}
		s.TotalMatches++
		if m.IsCompleted {
			s.CompletedMatches++
		}
	}
	for _, r := range registrations {
		if r.TournamentID != tournamentID {
			continue
		}
		s.TotalRegistrations++
		if r.IsApproved {
			s.ApprovedRegistrations++
		}
	}
	return s
}
