package stats_test

import (
	"testing"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/stats"
)

func attendanceFor(childID int, present ...bool) []models.Attendance {
	records := make([]models.Attendance, len(present))
	for i, p := range present {
		records[i] = models.Attendance{ID: i + 1, ChildID: childID, SessionID: i + 1, Present: p}
	}
	return records
}

func TestAggregateProfileAttendanceRate(t *testing.T) {
	tests := []struct {
		name         string
		attendance   []models.Attendance
		wantTotal    int
		wantAttended int
		wantRate     float64
	}{
		{
			name:     "no records yields zero rate",
			wantRate: 0.0,
		},
		{
			name:         "three of four attended",
			attendance:   attendanceFor(1, true, true, true, false),
			wantTotal:    4,
			wantAttended: 3,
			wantRate:     75.0,
		},
		{
			name:         "rate rounds to two decimals",
			attendance:   attendanceFor(1, true, false, false),
			wantTotal:    3,
			wantAttended: 1,
			wantRate:     33.33,
		},
		{
			name: "other children's records are ignored",
			attendance: append(attendanceFor(1, true, true),
				models.Attendance{ID: 50, ChildID: 2, Present: false}),
			wantTotal:    2,
			wantAttended: 2,
			wantRate:     100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.AggregateProfile(1, tt.attendance, nil)
			if got.TotalSessions != tt.wantTotal {
				t.Errorf("TotalSessions = %d, want %d", got.TotalSessions, tt.wantTotal)
			}
			if got.SessionsAttended != tt.wantAttended {
				t.Errorf("SessionsAttended = %d, want %d", got.SessionsAttended, tt.wantAttended)
			}
			if got.AttendanceRate != tt.wantRate {
				t.Errorf("AttendanceRate = %v, want %v", got.AttendanceRate, tt.wantRate)
			}
		})
	}
}

func TestAggregateProfileLatestAssessment(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }
	score := func(v float64) *float64 { return &v }

	assessments := []models.Assessment{
		{ID: 1, ChildID: 1, AssessmentDate: day(1), OverallScore: score(2.5)},
		{ID: 3, ChildID: 1, AssessmentDate: day(20), OverallScore: score(3.8)},
		{ID: 2, ChildID: 1, AssessmentDate: day(10), OverallScore: score(3.0)},
		{ID: 4, ChildID: 2, AssessmentDate: day(25), OverallScore: score(5.0)},
	}

	got := stats.AggregateProfile(1, nil, assessments)

	if got.LatestAssessmentDate == nil || !got.LatestAssessmentDate.Equal(day(20)) {
		t.Errorf("LatestAssessmentDate = %v, want %v", got.LatestAssessmentDate, day(20))
	}
	if got.LatestAssessmentScore == nil || *got.LatestAssessmentScore != 3.8 {
		t.Errorf("LatestAssessmentScore = %v, want 3.8", got.LatestAssessmentScore)
	}
}

func TestAggregateProfileNoAssessments(t *testing.T) {
	got := stats.AggregateProfile(1, attendanceFor(1, true), nil)
	if got.LatestAssessmentDate != nil || got.LatestAssessmentScore != nil {
		t.Errorf("expected absent assessment snapshot, got date=%v score=%v",
			got.LatestAssessmentDate, got.LatestAssessmentScore)
	}
}
