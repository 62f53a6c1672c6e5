package stats_test

import (
	"errors"
	"testing"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSubmitResult(t *testing.T) {
	Convey("Given a scheduled match between team 10 and team 20", t, func() {
		match := models.Match{
			ID:           1,
			TournamentID: 5,
			Team1ID:      10,
			Team2ID:      20,
		}

		Convey("When both scores arrive and the match completes", func() {
			updated, deltas, err := stats.SubmitResult(match, stats.MatchPatch{
				Team1Score:  intPtr(13),
				Team2Score:  intPtr(9),
				IsCompleted: boolPtr(true),
			})

			So(err, ShouldBeNil)

			Convey("Then the higher-scoring team is the winner", func() {
				So(updated.WinnerID, ShouldNotBeNil)
				So(*updated.WinnerID, ShouldEqual, 10)
				So(updated.IsCompleted, ShouldBeTrue)
			})

			Convey("And exactly two deltas are produced", func() {
				So(deltas, ShouldHaveLength, 2)
				So(deltas[0].TeamID, ShouldEqual, 10)
				So(deltas[0].Outcome, ShouldEqual, stats.OutcomeWin)
				So(deltas[0].PointsFor, ShouldEqual, 13)
				So(deltas[0].PointsAgainst, ShouldEqual, 9)
				So(deltas[1].TeamID, ShouldEqual, 20)
				So(deltas[1].Outcome, ShouldEqual, stats.OutcomeLoss)
				So(deltas[1].PointsFor, ShouldEqual, 9)
				So(deltas[1].PointsAgainst, ShouldEqual, 13)
			})

			Convey("And resubmitting the same result is rejected without deltas", func() {
				again, deltas2, err2 := stats.SubmitResult(updated, stats.MatchPatch{
					Team1Score:  intPtr(13),
					Team2Score:  intPtr(9),
					IsCompleted: boolPtr(true),
				})
				So(errors.Is(err2, stats.ErrMatchAlreadyCompleted), ShouldBeTrue)
				So(deltas2, ShouldBeNil)
				So(again.IsCompleted, ShouldBeTrue)
			})

			Convey("And a later score correction merges without re-running standings", func() {
				corrected, deltas2, err2 := stats.SubmitResult(updated, stats.MatchPatch{
					Team1Score: intPtr(14),
					Team2Score: intPtr(9),
				})
				So(err2, ShouldBeNil)
				So(deltas2, ShouldBeNil)
				So(corrected.Team1Score, ShouldEqual, 14)
			})

			Convey("And the match cannot be uncompleted", func() {
				reverted, deltas2, err2 := stats.SubmitResult(updated, stats.MatchPatch{
					IsCompleted: boolPtr(false),
				})
				So(errors.Is(err2, stats.ErrMatchAlreadyCompleted), ShouldBeTrue)
				So(deltas2, ShouldBeNil)
				So(reverted.IsCompleted, ShouldBeTrue)
			})
		})

		Convey("When the match ends level", func() {
			withWinner := match
			withWinner.WinnerID = intPtr(10) // stale winner from an earlier partial update

			updated, deltas, err := stats.SubmitResult(withWinner, stats.MatchPatch{
				Team1Score:  intPtr(11),
				Team2Score:  intPtr(11),
				IsCompleted: boolPtr(true),
			})

			So(err, ShouldBeNil)

			Convey("Then the stale winner is cleared and both deltas are draws", func() {
				So(updated.WinnerID, ShouldBeNil)
				So(deltas, ShouldHaveLength, 2)
				So(deltas[0].Outcome, ShouldEqual, stats.OutcomeDraw)
				So(deltas[1].Outcome, ShouldEqual, stats.OutcomeDraw)
			})
		})

		Convey("When only one score is in the patch", func() {
			updated, deltas, err := stats.SubmitResult(match, stats.MatchPatch{
				Team1Score: intPtr(7),
			})

			So(err, ShouldBeNil)

			Convey("Then the winner is not recomputed and nothing completes", func() {
				So(updated.Team1Score, ShouldEqual, 7)
				So(updated.Team2Score, ShouldEqual, 0)
				So(updated.WinnerID, ShouldBeNil)
				So(updated.IsCompleted, ShouldBeFalse)
				So(deltas, ShouldBeNil)
			})
		})

		Convey("When a forfeit completes with spirit scores", func() {
			updated, deltas, err := stats.SubmitResult(match, stats.MatchPatch{
				Team1Score:       intPtr(15),
				Team2Score:       intPtr(0),
				Team1SpiritScore: floatPtr(4.5),
				Team2SpiritScore: floatPtr(3.0),
				IsCompleted:      boolPtr(true),
				IsForfeit:        boolPtr(true),
			})

			So(err, ShouldBeNil)
			So(updated.IsForfeit, ShouldBeTrue)

			Convey("Then spirit scores carry into the deltas truncated", func() {
				So(deltas[0].SpiritScore, ShouldEqual, 4)
				So(deltas[1].SpiritScore, ShouldEqual, 3)
			})
		})

		Convey("When the completion flag arrives without scores in the patch", func() {
			scored := match
			scored.Team1Score = 9
			scored.Team2Score = 12
			scored.WinnerID = intPtr(20)

			updated, deltas, err := stats.SubmitResult(scored, stats.MatchPatch{
				IsCompleted: boolPtr(true),
			})

			So(err, ShouldBeNil)

			Convey("Then the stored scores and winner drive the deltas", func() {
				So(updated.IsCompleted, ShouldBeTrue)
				So(deltas, ShouldHaveLength, 2)
				So(deltas[0].Outcome, ShouldEqual, stats.OutcomeLoss)
				So(deltas[1].Outcome, ShouldEqual, stats.OutcomeWin)
				So(deltas[1].PointsFor, ShouldEqual, 12)
			})
		})
	})
}
