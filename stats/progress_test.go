package stats_test

import (
	"testing"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/stats"
)

func assessmentDay(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestProgressEmptyHistory(t *testing.T) {
	got := stats.Progress(1, nil)

	if got.TotalAssessments != 0 {
		t.Errorf("TotalAssessments = %d, want 0", got.TotalAssessments)
	}
	if got.Trend != "No assessments available" {
		t.Errorf("Trend = %q, want no-assessments indicator", got.Trend)
	}
	if got.BaselineDate != nil || got.LatestDate != nil {
		t.Error("expected absent baseline and latest dates")
	}
	if got.Progress != (stats.Improvements{}) {
		t.Errorf("expected empty improvements, got %+v", got.Progress)
	}
}

func TestProgressImprovements(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	assessments := []models.Assessment{
		{
			ID: 1, ChildID: 1,
			AssessmentType:  models.AssessmentBaseline,
			AssessmentDate:  assessmentDay(1),
			LeadershipScore: score(2.0),
			TeamworkScore:   score(3.0),
			ConfidenceScore: score(0.0), // explicitly scored zero
		},
		{
			ID: 2, ChildID: 1,
			AssessmentType:  models.AssessmentEndline,
			AssessmentDate:  assessmentDay(30),
			LeadershipScore: score(4.0),
			// teamwork not scored this time
			ConfidenceScore: score(1.5),
			ResilienceScore: score(3.0), // missing in baseline
		},
	}

	got := stats.Progress(1, assessments)

	if got.TotalAssessments != 2 {
		t.Fatalf("TotalAssessments = %d, want 2", got.TotalAssessments)
	}
	if got.BaselineDate == nil || !got.BaselineDate.Equal(assessmentDay(1)) {
		t.Errorf("BaselineDate = %v, want %v", got.BaselineDate, assessmentDay(1))
	}
	if got.LatestDate == nil || !got.LatestDate.Equal(assessmentDay(30)) {
		t.Errorf("LatestDate = %v, want %v", got.LatestDate, assessmentDay(30))
	}

	if got.Progress.Leadership == nil || *got.Progress.Leadership != 2.0 {
		t.Errorf("Leadership improvement = %v, want 2.0", got.Progress.Leadership)
	}
	if got.Progress.Teamwork != nil {
		t.Errorf("Teamwork improvement = %v, want omitted (latest unscored)", *got.Progress.Teamwork)
	}
	if got.Progress.Resilience != nil {
		t.Errorf("Resilience improvement = %v, want omitted (baseline unscored)", *got.Progress.Resilience)
	}
	// A baseline zero is a real score, not a missing value.
	if got.Progress.Confidence == nil || *got.Progress.Confidence != 1.5 {
		t.Errorf("Confidence improvement = %v, want 1.5", got.Progress.Confidence)
	}
}

func TestProgressNoBaseline(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	assessments := []models.Assessment{
		{
			ID: 5, ChildID: 1,
			AssessmentType: models.AssessmentMidTerm,
			AssessmentDate: assessmentDay(10),
			OverallScore:   score(3.0),
		},
		{
			ID: 6, ChildID: 1,
			AssessmentType: models.AssessmentEndline,
			AssessmentDate: assessmentDay(20),
			OverallScore:   score(4.0),
		},
	}

	got := stats.Progress(1, assessments)

	if got.BaselineDate != nil {
		t.Errorf("BaselineDate = %v, want absent", got.BaselineDate)
	}
	if got.LatestDate == nil || !got.LatestDate.Equal(assessmentDay(20)) {
		t.Errorf("LatestDate = %v, want %v", got.LatestDate, assessmentDay(20))
	}
	if got.Progress != (stats.Improvements{}) {
		t.Errorf("expected no improvements without a baseline, got %+v", got.Progress)
	}
}

func TestProgressBaselineIsOnlyAssessment(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	assessments := []models.Assessment{
		{
			ID: 9, ChildID: 1,
			AssessmentType: models.AssessmentBaseline,
			AssessmentDate: assessmentDay(3),
			OverallScore:   score(2.0),
		},
	}

	got := stats.Progress(1, assessments)

	// Baseline and latest are the same record: nothing to compare yet.
	if got.Progress != (stats.Improvements{}) {
		t.Errorf("expected no improvements for a single assessment, got %+v", got.Progress)
	}
	if got.BaselineDate == nil || got.LatestDate == nil {
		t.Error("baseline and latest dates should both be reported")
	}
}
