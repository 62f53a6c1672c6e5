package models

import "time"

// AssessmentType marks a child's position in the assessment timeline.
// Baseline is the reference point for progress calculations.
type AssessmentType string

const (
	AssessmentBaseline AssessmentType = "baseline"
	AssessmentMidTerm  AssessmentType = "mid_term"
	AssessmentFollowUp AssessmentType = "follow_up"
	AssessmentEndline  AssessmentType = "endline"
)

// Assessment is one LSAS scoring event for a child. Scores are nullable:
// a dimension the assessor skipped stays nil and is distinct from an explicit
// zero.
type Assessment struct {
	ID             int            `json:"id" db:"id"`
	ChildID        int            `json:"child_id" db:"child_id"`
	CoachID        *int           `json:"coach_id,omitempty" db:"coach_id"`
	AssessmentType AssessmentType `json:"assessment_type" db:"assessment_type"`
	AssessmentDate time.Time      `json:"assessment_date" db:"assessment_date"`

	OverallScore       *float64 `json:"overall_score,omitempty" db:"overall_score"`
	LeadershipScore    *float64 `json:"leadership_score,omitempty" db:"leadership_score"`
	TeamworkScore      *float64 `json:"teamwork_score,omitempty" db:"teamwork_score"`
	CommunicationScore *float64 `json:"communication_score,omitempty" db:"communication_score"`
	ConfidenceScore    *float64 `json:"confidence_score,omitempty" db:"confidence_score"`
	ResilienceScore    *float64 `json:"resilience_score,omitempty" db:"resilience_score"`

	Strengths           *string `json:"strengths,omitempty" db:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement,omitempty" db:"areas_for_improvement"`
	Notes               *string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
