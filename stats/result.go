package stats

import (
	"errors"

	"github.com/erzer12/y-ultimate/models"
)

// ErrMatchAlreadyCompleted is returned when a result submission re-asserts
// completion on a match that already completed. The first completion is the
// only one that may move standings, so a second attempt is an invalid
// transition rather than a silent no-op.
var ErrMatchAlreadyCompleted = errors.New("match result already submitted")

// MatchPatch is a partial score/result update. Nil fields are left
// untouched on the match.
type MatchPatch struct {
	Team1Score       *int     `json:"team1_score"`
	Team2Score       *int     `json:"team2_score"`
	Team1SpiritScore *float64 `json:"team1_spirit_score"`
	Team2SpiritScore *float64 `json:"team2_spirit_score"`
	IsCompleted      *bool    `json:"is_completed"`
	IsForfeit        *bool    `json:"is_forfeit"`
}

// SubmitResult merges the patch into the match, recomputes the winner, and
// produces standings deltas when this call transitions the match from
// not-completed to completed. The deltas slice is nil otherwise.
//
// Winner determination only runs when the patch carries both scores; a
// higher score wins and equal scores clear the winner (draw), overwriting
// any stale winner from a previous submission.
//
// A completed match never leaves the completed state: if the patch touches
// IsCompleted on an already-completed match the flag is left as-is and
// ErrMatchAlreadyCompleted is returned with no deltas. Other corrections to
// a completed match merge silently and never re-run standings.
func SubmitResult(match models.Match, patch MatchPatch) (models.Match, []TeamDelta, error) {
	wasCompleted := match.IsCompleted
	reasserted := false
	if wasCompleted && patch.IsCompleted != nil {
		// No reversal path: drop the flag from the patch before merging.
		reasserted = true
		patch.IsCompleted = nil
	}
	updated := merge(match, patch)

	if patch.Team1Score != nil && patch.Team2Score != nil {
		switch {
		case updated.Team1Score > updated.Team2Score:
			updated.WinnerID = &updated.Team1ID
		case updated.Team2Score > updated.Team1Score:
			updated.WinnerID = &updated.Team2ID
		default:
			updated.WinnerID = nil
		}
	}

	if wasCompleted {
		if reasserted {
			return updated, nil, ErrMatchAlreadyCompleted
		}
		return updated, nil, nil
	}
	if !updated.IsCompleted {
		return updated, nil, nil
	}

	d1, d2 := ComputeDeltas(updated)
	return updated, []TeamDelta{d1, d2}, nil
}

func merge(match models.Match, patch MatchPatch) models.Match {
	if patch.Team1Score != nil {
		match.Team1Score = *patch.Team1Score
	}
	if patch.Team2Score != nil {
		match.Team2Score = *patch.Team2Score
	}
	if patch.Team1SpiritScore != nil {
		match.Team1SpiritScore = patch.Team1SpiritScore
	}
	if patch.Team2SpiritScore != nil {
		match.Team2SpiritScore = patch.Team2SpiritScore
	}
	if patch.IsCompleted != nil {
		match.IsCompleted = *patch.IsCompleted
	}
	if patch.IsForfeit != nil {
		match.IsForfeit = *patch.IsForfeit
	}
	return match
}
