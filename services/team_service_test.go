package services

import (
	"context"
	"testing"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
)

type fakeTeamRepo struct {
	repositories.TeamRepository
	teams []models.Team
}

func (r *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Team, error) {
	out := make([]models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		if team.TournamentID == tournamentID {
			out = append(out, team)
		}
	}
	return out, nil
}

func TestStandingsOrdering(t *testing.T) {
	repo := &fakeTeamRepo{teams: []models.Team{
		{ID: 1, TournamentID: 5, Name: "Spinners", Wins: 2, PointsFor: 30, PointsAgainst: 20},
		{ID: 2, TournamentID: 5, Name: "Breeze", Wins: 3, PointsFor: 25, PointsAgainst: 28},
		{ID: 3, TournamentID: 5, Name: "Hucks", Wins: 2, PointsFor: 35, PointsAgainst: 18},
		{ID: 4, TournamentID: 5, Name: "Layouts", Wins: 2, PointsFor: 32, PointsAgainst: 22},
		{ID: 5, TournamentID: 9, Name: "Other tournament", Wins: 9},
	}}
	svc := NewTeamService(repo)

	standings, err := svc.Standings(context.Background(), 5)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}

	// Breeze leads on wins; Hucks beats Layouts beats Spinners on point
	// difference (+17, +10, +10 with Layouts ahead on points for).
	wantOrder := []string{"Breeze", "Hucks", "Layouts", "Spinners"}
	if len(standings) != len(wantOrder) {
		t.Fatalf("expected %d teams, got %d", len(wantOrder), len(standings))
	}
	for i, name := range wantOrder {
		if standings[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i+1, name, standings[i].Name)
		}
	}
}
