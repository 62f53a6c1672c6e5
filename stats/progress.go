package stats

import (
	"time"

	"github.com/erzer12/y-ultimate/models"
)

const trendNoAssessments = "No assessments available"

// Improvements carries the per-dimension score change between a child's
// baseline assessment and their latest one. A dimension is present only when
// both assessments scored it; a nil field means "not comparable", never zero.
type Improvements struct {
	Overall       *float64 `json:"overall_improvement,omitempty"`
	Leadership    *float64 `json:"leadership_improvement,omitempty"`
	Teamwork      *float64 `json:"teamwork_improvement,omitempty"`
	Communication *float64 `json:"communication_improvement,omitempty"`
	Confidence    *float64 `json:"confidence_improvement,omitempty"`
	Resilience    *float64 `json:"resilience_improvement,omitempty"`
}

type ProgressReport struct {
	ChildID          int          `json:"child_id"`
	TotalAssessments int          `json:"total_assessments"`
	BaselineDate     *time.Time   `json:"baseline_date,omitempty"`
	LatestDate       *time.Time   `json:"latest_date,omitempty"`
	Progress         Improvements `json:"progress"`
	Trend            string       `json:"trend,omitempty"`
}

// Progress builds a child's development report from their assessments,
// ordered by assessment date ascending (the repository guarantees the
// order). The baseline is the first baseline-typed assessment; the latest is
// simply the last element. Improvements are computed only when baseline and
// latest exist and are distinct records.
func Progress(childID int, assessments []models.Assessment) ProgressReport {
	report := ProgressReport{ChildID: childID, TotalAssessments: len(assessments)}

	if len(assessments) == 0 {
		report.Trend = trendNoAssessments
		return report
	}

	var baseline *models.Assessment
	for i := range assessments {
		if assessments[i].AssessmentType == models.AssessmentBaseline {
			baseline = &assessments[i]
			break
		}
	}
	latest := &assessments[len(assessments)-1]

	latestDate := latest.AssessmentDate
	report.LatestDate = &latestDate
	if baseline != nil {
		baselineDate := baseline.AssessmentDate
		report.BaselineDate = &baselineDate
	}

	if baseline == nil || baseline.ID == latest.ID {
		return report
	}

	report.Progress = Improvements{
		Overall:       improvement(baseline.OverallScore, latest.OverallScore),
		Leadership:    improvement(baseline.LeadershipScore, latest.LeadershipScore),
		Teamwork:      improvement(baseline.TeamworkScore, latest.TeamworkScore),
		Communication: improvement(baseline.CommunicationScore, latest.CommunicationScore),
		Confidence:    improvement(baseline.ConfidenceScore, latest.ConfidenceScore),
		Resilience:    improvement(baseline.ResilienceScore, latest.ResilienceScore),
	}
	return report
}

// improvement is nil unless both ends scored the dimension. An explicit 0.0
// counts as scored.
func improvement(baseline, latest *float64) *float64 {
	if baseline == nil || latest == nil {
		return nil
	}
	delta := *latest - *baseline
	return &delta
}
