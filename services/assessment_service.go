package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erzer12/y-ultimate/models"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/stats"
)

type AssessmentService interface {
	Create(ctx context.Context, input CreateAssessmentInput) (*models.Assessment, error)
	GetByID(ctx context.Context, id int) (*models.Assessment, error)
	List(ctx context.Context, filter repositories.AssessmentListFilter) ([]models.Assessment, error)
	Update(ctx context.Context, id int, input UpdateAssessmentInput) (*models.Assessment, error)
	Delete(ctx context.Context, id int) error

	// ChildProgress compares a child's baseline with their most recent
	// assessment across the life skills dimensions.
	ChildProgress(ctx context.Context, childID int) (*stats.ProgressReport, error)
}

type CreateAssessmentInput struct {
	ChildID        int                   `json:"child_id"`
	CoachID        *int                  `json:"coach_id"`
	AssessmentType models.AssessmentType `json:"assessment_type"`
	AssessmentDate time.Time             `json:"assessment_date"`

	OverallScore       *float64 `json:"overall_score"`
	LeadershipScore    *float64 `json:"leadership_score"`
	TeamworkScore      *float64 `json:"teamwork_score"`
	CommunicationScore *float64 `json:"communication_score"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	ResilienceScore    *float64 `json:"resilience_score"`

	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
	Notes               *string `json:"notes"`
}

type UpdateAssessmentInput struct {
	AssessmentType *models.AssessmentType `json:"assessment_type"`
	AssessmentDate *time.Time             `json:"assessment_date"`

	OverallScore       *float64 `json:"overall_score"`
	LeadershipScore    *float64 `json:"leadership_score"`
	TeamworkScore      *float64 `json:"teamwork_score"`
	CommunicationScore *float64 `json:"communication_score"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	ResilienceScore    *float64 `json:"resilience_score"`

	Strengths           *string `json:"strengths"`
	AreasForImprovement *string `json:"areas_for_improvement"`
	Notes               *string `json:"notes"`
}

type assessmentService struct {
	assessmentRepo repositories.AssessmentRepository
	profileRepo    repositories.ProfileRepository
}

func NewAssessmentService(
	assessmentRepo repositories.AssessmentRepository,
	profileRepo repositories.ProfileRepository,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		profileRepo:    profileRepo,
	}
}

func (s *assessmentService) Create(ctx context.Context, input CreateAssessmentInput) (*models.Assessment, error) {
	if err := validateAssessmentType(input.AssessmentType); err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.GetByID(ctx, input.ChildID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", input.ChildID, err)
	}

	assessment := &models.Assessment{
		ChildID:        input.ChildID,
		CoachID:        input.CoachID,
		AssessmentType: input.AssessmentType,
		AssessmentDate: input.AssessmentDate,

		OverallScore:       input.OverallScore,
		LeadershipScore:    input.LeadershipScore,
		TeamworkScore:      input.TeamworkScore,
		CommunicationScore: input.CommunicationScore,
		ConfidenceScore:    input.ConfidenceScore,
		ResilienceScore:    input.ResilienceScore,

		Strengths:           input.Strengths,
		AreasForImprovement: input.AreasForImprovement,
		Notes:               input.Notes,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		if errors.Is(err, repositories.ErrAssessmentChildInvalid) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id int) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment %d: %w", id, err)
	}
	return assessment, nil
}

func (s *assessmentService) List(ctx context.Context, filter repositories.AssessmentListFilter) ([]models.Assessment, error) {
	assessments, err := s.assessmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func (s *assessmentService) Update(ctx context.Context, id int, input UpdateAssessmentInput) (*models.Assessment, error) {
	assessment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssessmentType != nil {
		if err := validateAssessmentType(*input.AssessmentType); err != nil {
			return nil, err
		}
		assessment.AssessmentType = *input.AssessmentType
	}
	if input.AssessmentDate != nil {
		assessment.AssessmentDate = *input.AssessmentDate
	}
	if input.OverallScore != nil {
		assessment.OverallScore = input.OverallScore
	}
	if input.LeadershipScore != nil {
		assessment.LeadershipScore = input.LeadershipScore
	}
	if input.TeamworkScore != nil {
		assessment.TeamworkScore = input.TeamworkScore
	}
	if input.CommunicationScore != nil {
		assessment.CommunicationScore = input.CommunicationScore
	}
	if input.ConfidenceScore != nil {
		assessment.ConfidenceScore = input.ConfidenceScore
	}
	if input.ResilienceScore != nil {
		assessment.ResilienceScore = input.ResilienceScore
	}
	if input.Strengths != nil {
		assessment.Strengths = input.Strengths
	}
	if input.AreasForImprovement != nil {
		assessment.AreasForImprovement = input.AreasForImprovement
	}
	if input.Notes != nil {
		assessment.Notes = input.Notes
	}

	if err := s.assessmentRepo.Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment %d: %w", id, err)
	}
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, id int) error {
	if err := s.assessmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAssessmentNotFound) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("failed to delete assessment %d: %w", id, err)
	}
	return nil
}

func (s *assessmentService) ChildProgress(ctx context.Context, childID int) (*stats.ProgressReport, error) {
	if _, err := s.profileRepo.GetByID(ctx, childID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get child profile %d: %w", childID, err)
	}

	assessments, err := s.assessmentRepo.ListByChildChronological(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments for child %d: %w", childID, err)
	}

	report := stats.Progress(childID, assessments)
	return &report, nil
}

func validateAssessmentType(t models.AssessmentType) error {
	switch t {
	case models.AssessmentBaseline, models.AssessmentMidTerm, models.AssessmentFollowUp, models.AssessmentEndline:
		return nil
	}
	return fmt.Errorf("%w: unknown assessment type %q", ErrValidationFailed, t)
}
