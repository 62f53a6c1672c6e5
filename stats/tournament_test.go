package stats_test

import (
	"testing"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/stats"
)

func TestAggregateTournament(t *testing.T) {
	const tournamentID = 7

	teams := make([]models.Team, 0, 5)
	for i := 0; i < 4; i++ {
		teams = append(teams, models.Team{ID: i + 1, TournamentID: tournamentID})
	}
	// Team from another tournament must not count.
	teams = append(teams, models.Team{ID: 99, TournamentID: 8})

	matches := make([]models.Match, 0, 7)
	for i := 0; i < 6; i++ {
		matches = append(matches, models.Match{
			ID:           i + 1,
			TournamentID: tournamentID,
			IsCompleted:  i < 3,
		})
	}
	matches = append(matches, models.Match{ID: 99, TournamentID: 8, IsCompleted: true})

	registrations := make([]models.PlayerRegistration, 0, 11)
	for i := 0; i < 10; i++ {
		registrations = append(registrations, models.PlayerRegistration{
			ID:           i + 1,
			TournamentID: tournamentID,
			IsApproved:   i < 7,
		})
	}
	registrations = append(registrations, models.PlayerRegistration{ID: 99, TournamentID: 8, IsApproved: true})

	got := stats.AggregateTournament(tournamentID, teams, matches, registrations)

	want := stats.TournamentStats{
		TournamentID:          tournamentID,
		TotalTeams:            4,
		TotalMatches:          6,
		CompletedMatches:      3,
		TotalRegistrations:    10,
		ApprovedRegistrations: 7,
	}
	if got != want {
		t.Errorf("AggregateTournament() = %+v, want %+v", got, want)
	}
}

func TestAggregateTournamentEmpty(t *testing.T) {
	got := stats.AggregateTournament(3, nil, nil, nil)
	want := stats.TournamentStats{TournamentID: 3}
	if got != want {
		t.Errorf("AggregateTournament() on empty input = %+v, want %+v", got, want)
	}
}
