package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erzer12/y-ultimate/models"
	"github.com/lib/pq"
)

var (
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentChildInvalid = errors.New("assessment child conflict or invalid")
)

type AssessmentListFilter struct {
	ChildID        *int
	AssessmentType *models.AssessmentType
	Limit          int
	Offset         int
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id int) (*models.Assessment, error)
	List(ctx context.Context, filter AssessmentListFilter) ([]models.Assessment, error)
	// ListByChildChronological returns every assessment for the child ordered
	// by assessment date ascending, the order the progress calculator expects.
	ListByChildChronological(ctx context.Context, childID int) ([]models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id int) error
}

type postgresAssessmentRepository struct {
	db *sql.DB
}

func NewPostgresAssessmentRepository(db *sql.DB) AssessmentRepository {
	return &postgresAssessmentRepository{db: db}
}

const assessmentColumns = `id, child_id, coach_id, assessment_type, assessment_date,
	overall_score, leadership_score, teamwork_score, communication_score,
	confidence_score, resilience_score, strengths, areas_for_improvement, notes, created_at`

func (r *postgresAssessmentRepository) scanAssessment(row interface{ Scan(...interface{}) error }) (*models.Assessment, error) {
	var a models.Assessment
	err := row.Scan(
		&a.ID, &a.ChildID, &a.CoachID, &a.AssessmentType, &a.AssessmentDate,
		&a.OverallScore, &a.LeadershipScore, &a.TeamworkScore, &a.CommunicationScore,
		&a.ConfidenceScore, &a.ResilienceScore,
		&a.Strengths, &a.AreasForImprovement, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	query := `
		INSERT INTO assessments
			(child_id, coach_id, assessment_type, assessment_date,
			 overall_score, leadership_score, teamwork_score, communication_score,
			 confidence_score, resilience_score, strengths, areas_for_improvement, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		assessment.ChildID, assessment.CoachID, assessment.AssessmentType, assessment.AssessmentDate,
		assessment.OverallScore, assessment.LeadershipScore, assessment.TeamworkScore,
		assessment.CommunicationScore, assessment.ConfidenceScore, assessment.ResilienceScore,
		assessment.Strengths, assessment.AreasForImprovement, assessment.Notes,
	).Scan(&assessment.ID, &assessment.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "assessments_child_id_fkey" {
		return ErrAssessmentChildInvalid
	}
	return err
}

func (r *postgresAssessmentRepository) GetByID(ctx context.Context, id int) (*models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = $1`
	return r.scanAssessment(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresAssessmentRepository) List(ctx context.Context, filter AssessmentListFilter) ([]models.Assessment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + assessmentColumns + ` FROM assessments WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	placeholder := 1

	if filter.ChildID != nil {
		queryBuilder.WriteString(" AND child_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.ChildID)
		placeholder++
	}
	if filter.AssessmentType != nil {
		queryBuilder.WriteString(" AND assessment_type = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.AssessmentType)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY assessment_date DESC, id DESC")

	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(placeholder))
		args = append(args, filter.Limit)
		placeholder++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(" OFFSET $" + strconv.Itoa(placeholder))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]models.Assessment, 0)
	for rows.Next() {
		a, errScan := r.scanAssessment(rows)
		if errScan != nil {
			return nil, errScan
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}

func (r *postgresAssessmentRepository) ListByChildChronological(ctx context.Context, childID int) ([]models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments
		WHERE child_id = $1
		ORDER BY assessment_date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments for child %d: %w", childID, err)
	}
	defer rows.Close()

	assessments := make([]models.Assessment, 0)
	for rows.Next() {
		a, errScan := r.scanAssessment(rows)
		if errScan != nil {
			return nil, errScan
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}

func (r *postgresAssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	query := `
		UPDATE assessments SET
			assessment_type = $1, assessment_date = $2,
			overall_score = $3, leadership_score = $4, teamwork_score = $5,
			communication_score = $6, confidence_score = $7, resilience_score = $8,
			strengths = $9, areas_for_improvement = $10, notes = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(ctx, query,
		assessment.AssessmentType, assessment.AssessmentDate,
		assessment.OverallScore, assessment.LeadershipScore, assessment.TeamworkScore,
		assessment.CommunicationScore, assessment.ConfidenceScore, assessment.ResilienceScore,
		assessment.Strengths, assessment.AreasForImprovement, assessment.Notes, assessment.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssessmentNotFound)
}

func (r *postgresAssessmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssessmentNotFound)
}
