package stats_test

import (
	"testing"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeDeltas(t *testing.T) {
	Convey("Given a completed match with a winner", t, func() {
		match := models.Match{
			Team1ID:          1,
			Team2ID:          2,
			Team1Score:       13,
			Team2Score:       9,
			WinnerID:         intPtr(1),
			Team1SpiritScore: floatPtr(4.8),
			IsCompleted:      true,
		}

		d1, d2 := stats.ComputeDeltas(match)

		Convey("Then points mirror each side's own and opposing score", func() {
			So(d1.PointsFor, ShouldEqual, 13)
			So(d1.PointsAgainst, ShouldEqual, 9)
			So(d2.PointsFor, ShouldEqual, 9)
			So(d2.PointsAgainst, ShouldEqual, 13)
		})

		Convey("Then outcomes are symmetric", func() {
			So(d1.Outcome, ShouldEqual, stats.OutcomeWin)
			So(d2.Outcome, ShouldEqual, stats.OutcomeLoss)
		})

		Convey("Then spirit scores truncate and default to zero when absent", func() {
			So(d1.SpiritScore, ShouldEqual, 4)
			So(d2.SpiritScore, ShouldEqual, 0)
		})
	})

	Convey("Given a match with no winner recorded", t, func() {
		match := models.Match{Team1ID: 1, Team2ID: 2, Team1Score: 10, Team2Score: 10}
		d1, d2 := stats.ComputeDeltas(match)

		Convey("Then both sides draw", func() {
			So(d1.Outcome, ShouldEqual, stats.OutcomeDraw)
			So(d2.Outcome, ShouldEqual, stats.OutcomeDraw)
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given a team with prior standings", t, func() {
		team := models.Team{
			ID: 1, Wins: 3, Losses: 1, Draws: 1,
			PointsFor: 55, PointsAgainst: 40, SpiritScoreTotal: 19,
		}

		Convey("When one win delta is applied", func() {
			updated := stats.Apply(team, stats.TeamDelta{
				TeamID: 1, Outcome: stats.OutcomeWin,
				PointsFor: 13, PointsAgainst: 9, SpiritScore: 4,
			})

			Convey("Then played-match total grows by exactly one", func() {
				before := team.Wins + team.Losses + team.Draws
				after := updated.Wins + updated.Losses + updated.Draws
				So(after, ShouldEqual, before+1)
				So(updated.Wins, ShouldEqual, 4)
			})

			Convey("Then point and spirit totals accumulate", func() {
				So(updated.PointsFor, ShouldEqual, 68)
				So(updated.PointsAgainst, ShouldEqual, 49)
				So(updated.SpiritScoreTotal, ShouldEqual, 23)
			})

			Convey("Then the input team value is untouched", func() {
				So(team.Wins, ShouldEqual, 3)
				So(team.PointsFor, ShouldEqual, 55)
			})
		})

		Convey("When loss and draw deltas are applied", func() {
			afterLoss := stats.Apply(team, stats.TeamDelta{Outcome: stats.OutcomeLoss})
			afterDraw := stats.Apply(team, stats.TeamDelta{Outcome: stats.OutcomeDraw})

			So(afterLoss.Losses, ShouldEqual, 2)
			So(afterDraw.Draws, ShouldEqual, 2)
		})
	})
}
