package stats

import (
	"math"
	"time"

	"github.com/erzer12/y-ultimate/models"
)

type ProfileStats struct {
	ChildID          int     `json:"child_id"`
	TotalSessions    int     `json:"total_sessions"`
	SessionsAttended int     `json:"sessions_attended"`
	AttendanceRate   float64 `json:"attendance_rate"`

	LatestAssessmentDate  *time.Time `json:"latest_assessment_date,omitempty"`
	LatestAssessmentScore *float64   `json:"latest_assessment_score,omitempty"`
}

// AggregateProfile computes a child's attendance rate and most recent
// assessment snapshot. Only records belonging to the child count; the rate
// is a percentage rounded to two decimals and 0.0 when there are no
// attendance records at all.
func AggregateProfile(
	childID int,
	attendance []models.Attendance,
	assessments []models.Assessment,
) ProfileStats {
	s := ProfileStats{ChildID: childID}

	for _, a := range attendance {
		if a.ChildID != childID {
			continue
		}
		s.TotalSessions++
		if a.Present {
			s.SessionsAttended++
		}
	}
	if s.TotalSessions > 0 {
		rate := float64(s.SessionsAttended) / float64(s.TotalSessions) * 100
		s.AttendanceRate = math.Round(rate*100) / 100
	}

	var latest *models.Assessment
	for i := range assessments {
		a := &assessments[i]
		if a.ChildID != childID {
			continue
		}
		if latest == nil || a.AssessmentDate.After(latest.AssessmentDate) {
			latest = a
		}
	}
	if latest != nil {
		date := latest.AssessmentDate
		s.LatestAssessmentDate = &date
		s.LatestAssessmentScore = latest.OverallScore
	}
	return s
}
