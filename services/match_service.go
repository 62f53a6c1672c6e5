package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erzer12/y-ultimate/live"
	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/stats"
)

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.MatchListFilter) ([]models.Match, error)
	Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	// SubmitScore applies a result patch to a match and, when the patch
	// completes the match, applies the standings deltas to both teams in the
	// same transaction.
	SubmitScore(ctx context.Context, id int, input stats.MatchPatch) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type CreateMatchInput struct {
	TournamentID  int        `json:"tournament_id"`
	MatchNumber   int        `json:"match_number"`
	Round         *string    `json:"round"`
	Pool          *string    `json:"pool"`
	Team1ID       int        `json:"team1_id"`
	Team2ID       int        `json:"team2_id"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	Field         *string    `json:"field"`
}

// UpdateMatchInput covers scheduling changes only. Scores and completion go
// through SubmitScore so standings cannot drift.
type UpdateMatchInput struct {
	MatchNumber   *int       `json:"match_number"`
	Round         *string    `json:"round"`
	Pool          *string    `json:"pool"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	Field         *string    `json:"field"`
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	hub       *live.Hub
	logger    *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Team1ID == input.Team2ID {
		return nil, ErrMatchTeamsIdentical
	}

	match := &models.Match{
		TournamentID:  input.TournamentID,
		MatchNumber:   input.MatchNumber,
		Round:         input.Round,
		Pool:          input.Pool,
		Team1ID:       input.Team1ID,
		Team2ID:       input.Team2ID,
		ScheduledTime: input.ScheduledTime,
		Field:         input.Field,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchTournamentInvalid):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return s.GetByID(ctx, match.ID)
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	s.populateTeamNames(ctx, match)
	return match, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchListFilter) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	if input.MatchNumber != nil {
		match.MatchNumber = *input.MatchNumber
	}
	if input.Round != nil {
		match.Round = input.Round
	}
	if input.Pool != nil {
		match.Pool = input.Pool
	}
	if input.ScheduledTime != nil {
		match.ScheduledTime = input.ScheduledTime
	}
	if input.Field != nil {
		match.Field = input.Field
	}

	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	s.populateTeamNames(ctx, match)
	return match, nil
}

func (s *matchService) SubmitScore(ctx context.Context, id int, input stats.MatchPatch) (*models.Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to lock match %d: %w", id, err)
	}

	updated, deltas, err := stats.SubmitResult(*match, input)
	if err != nil {
		if errors.Is(err, stats.ErrMatchAlreadyCompleted) {
			return nil, ErrResultAlreadyRecorded
		}
		return nil, fmt.Errorf("failed to compute match result: %w", err)
	}

	if err := s.matchRepo.Update(ctx, tx, &updated); err != nil {
		return nil, fmt.Errorf("failed to store match result: %w", err)
	}

	if len(deltas) > 0 {
		if err := s.applyDeltas(ctx, tx, deltas); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match result: %w", err)
	}

	s.populateTeamNames(ctx, &updated)
	s.broadcast(updated, len(deltas) > 0)
	return &updated, nil
}

// applyDeltas locks both team rows in ascending id order so two concurrent
// submissions touching the same pair cannot deadlock.
func (s *matchService) applyDeltas(ctx context.Context, tx *sql.Tx, deltas []stats.TeamDelta) error {
	ordered := make([]stats.TeamDelta, len(deltas))
	copy(ordered, deltas)
	if len(ordered) == 2 && ordered[0].TeamID > ordered[1].TeamID {
		ordered[0], ordered[1] = ordered[1], ordered[0]
	}

	for _, delta := range ordered {
		team, err := s.teamRepo.GetByIDForUpdate(ctx, tx, delta.TeamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to lock team %d: %w", delta.TeamID, err)
		}
		applied := stats.Apply(*team, delta)
		if err := s.teamRepo.UpdateCounters(ctx, tx, &applied); err != nil {
			return fmt.Errorf("failed to update standings for team %d: %w", delta.TeamID, err)
		}
	}
	return nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) populateTeamNames(ctx context.Context, match *models.Match) {
	// Name lookups are best effort; a missing team never fails the request.
	if team, err := s.teamRepo.GetByID(ctx, match.Team1ID); err == nil {
		match.Team1Name = &team.Name
	}
	if team, err := s.teamRepo.GetByID(ctx, match.Team2ID); err == nil {
		match.Team2Name = &team.Name
		if match.WinnerID != nil && *match.WinnerID == team.ID {
			match.WinnerName = &team.Name
		}
	}
	if match.WinnerID != nil && *match.WinnerID == match.Team1ID {
		match.WinnerName = match.Team1Name
	}
}

func (s *matchService) broadcast(match models.Match, standingsChanged bool) {
	if s.hub == nil {
		return
	}
	room := fmt.Sprintf("tournament_%d", match.TournamentID)
	s.hub.BroadcastToRoom(room, live.Message{
		Type:    live.EventMatchUpdated,
		Payload: match,
		RoomID:  room,
	})
	if standingsChanged {
		s.hub.BroadcastToRoom(room, live.Message{
			Type:    live.EventStandingsUpdated,
			Payload: map[string]int{"tournament_id": match.TournamentID},
			RoomID:  room,
		})
	}
	s.logger.Debug("match update broadcast",
		slog.Int("match_id", match.ID),
		slog.Int("tournament_id", match.TournamentID),
		slog.Bool("standings_changed", standingsChanged))
}
