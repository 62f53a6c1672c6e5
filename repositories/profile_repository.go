package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erzer12/y-ultimate/models"
)

var ErrProfileNotFound = errors.New("child profile not found")

type ProfileListFilter struct {
	School    *string
	Community *string
	IsActive  *bool
	Limit     int
	Offset    int
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.ChildProfile) error
	GetByID(ctx context.Context, id int) (*models.ChildProfile, error)
	List(ctx context.Context, filter ProfileListFilter) ([]models.ChildProfile, error)
	Update(ctx context.Context, profile *models.ChildProfile) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

const profileColumns = `id, first_name, last_name, date_of_birth, gender, school, community,
	guardian_name, guardian_phone, is_active, created_at, photo_key`

func (r *postgresProfileRepository) scanProfile(row interface{ Scan(...interface{}) error }) (*models.ChildProfile, error) {
	var p models.ChildProfile
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.School, &p.Community,
		&p.GuardianName, &p.GuardianPhone, &p.IsActive, &p.CreatedAt, &p.PhotoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresProfileRepository) Create(ctx context.Context, profile *models.ChildProfile) error {
	query := `
		INSERT INTO child_profiles
			(first_name, last_name, date_of_birth, gender, school, community,
			 guardian_name, guardian_phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Gender,
		profile.School, profile.Community, profile.GuardianName, profile.GuardianPhone,
		profile.IsActive,
	).Scan(&profile.ID, &profile.CreatedAt)
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id int) (*models.ChildProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM child_profiles WHERE id = $1`
	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresProfileRepository) List(ctx context.Context, filter ProfileListFilter) ([]models.ChildProfile, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + profileColumns + ` FROM child_profiles WHERE 1=1`)

	args := make([]interface{}, 0, 5)
	placeholder := 1

	if filter.School != nil {
		queryBuilder.WriteString(" AND school = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.School)
		placeholder++
	}
	if filter.Community != nil {
		queryBuilder.WriteString(" AND community = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.Community)
		placeholder++
	}
	if filter.IsActive != nil {
		queryBuilder.WriteString(" AND is_active = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.IsActive)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

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
		return nil, fmt.Errorf("failed to query child profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.ChildProfile, 0)
	for rows.Next() {
		p, errScan := r.scanProfile(rows)
		if errScan != nil {
			return nil, errScan
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *postgresProfileRepository) Update(ctx context.Context, profile *models.ChildProfile) error {
	query := `
		UPDATE child_profiles SET
			first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
			school = $5, community = $6, guardian_name = $7, guardian_phone = $8,
			is_active = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Gender,
		profile.School, profile.Community, profile.GuardianName, profile.GuardianPhone,
		profile.IsActive, profile.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE child_profiles SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM child_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}
