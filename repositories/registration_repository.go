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
	ErrRegistrationNotFound   = errors.New("player registration not found")
	ErrRegistrationConflict   = errors.New("child is already registered for this tournament")
	ErrRegistrationRefInvalid = errors.New("registration tournament, child or team invalid")
)

type RegistrationListFilter struct {
	TournamentID *int
	ChildID      *int
	IsApproved   *bool
	Limit        int
	Offset       int
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.PlayerRegistration) error
	GetByID(ctx context.Context, id int) (*models.PlayerRegistration, error)
	List(ctx context.Context, filter RegistrationListFilter) ([]models.PlayerRegistration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerRegistration, error)
	Update(ctx context.Context, registration *models.PlayerRegistration) error
	Delete(ctx context.Context, id int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

const registrationColumns = `id, tournament_id, child_id, team_id, registration_date,
	jersey_number, jersey_size, is_approved, approval_date, approved_by,
	emergency_contact_name, emergency_contact_phone,
	dietary_restrictions, medical_conditions, notes`

func (r *postgresRegistrationRepository) scanRegistration(row interface{ Scan(...interface{}) error }) (*models.PlayerRegistration, error) {
	var reg models.PlayerRegistration
	err := row.Scan(
		&reg.ID, &reg.TournamentID, &reg.ChildID, &reg.TeamID, &reg.RegistrationDate,
		&reg.JerseyNumber, &reg.JerseySize, &reg.IsApproved, &reg.ApprovalDate, &reg.ApprovedBy,
		&reg.EmergencyContactName, &reg.EmergencyContactPhone,
		&reg.DietaryRestrictions, &reg.MedicalConditions, &reg.Notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.PlayerRegistration) error {
	query := `
		INSERT INTO player_registrations
			(tournament_id, child_id, team_id, jersey_number, jersey_size,
			 emergency_contact_name, emergency_contact_phone,
			 dietary_restrictions, medical_conditions, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, registration_date, is_approved`
	err := r.db.QueryRowContext(ctx, query,
		registration.TournamentID, registration.ChildID, registration.TeamID,
		registration.JerseyNumber, registration.JerseySize,
		registration.EmergencyContactName, registration.EmergencyContactPhone,
		registration.DietaryRestrictions, registration.MedicalConditions, registration.Notes,
	).Scan(&registration.ID, &registration.RegistrationDate, &registration.IsApproved)
	return r.handleRegistrationError(err)
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.PlayerRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM player_registrations WHERE id = $1`
	return r.scanRegistration(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRegistrationRepository) List(ctx context.Context, filter RegistrationListFilter) ([]models.PlayerRegistration, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + registrationColumns + ` FROM player_registrations WHERE 1=1`)

	args := make([]interface{}, 0, 5)
	placeholder := 1

	if filter.TournamentID != nil {
		queryBuilder.WriteString(" AND tournament_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.TournamentID)
		placeholder++
	}
	if filter.ChildID != nil {
		queryBuilder.WriteString(" AND child_id = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.ChildID)
		placeholder++
	}
	if filter.IsApproved != nil {
		queryBuilder.WriteString(" AND is_approved = $" + strconv.Itoa(placeholder))
		args = append(args, *filter.IsApproved)
		placeholder++
	}

	queryBuilder.WriteString(" ORDER BY registration_date ASC, id ASC")

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
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]models.PlayerRegistration, 0)
	for rows.Next() {
		reg, errScan := r.scanRegistration(rows)
		if errScan != nil {
			return nil, errScan
		}
		registrations = append(registrations, *reg)
	}
	return registrations, rows.Err()
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerRegistration, error) {
	return r.List(ctx, RegistrationListFilter{TournamentID: &tournamentID})
}

func (r *postgresRegistrationRepository) Update(ctx context.Context, registration *models.PlayerRegistration) error {
	query := `
		UPDATE player_registrations SET
			team_id = $1, jersey_number = $2, jersey_size = $3,
			is_approved = $4, approval_date = $5, approved_by = $6,
			emergency_contact_name = $7, emergency_contact_phone = $8,
			dietary_restrictions = $9, medical_conditions = $10, notes = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(ctx, query,
		registration.TeamID, registration.JerseyNumber, registration.JerseySize,
		registration.IsApproved, registration.ApprovalDate, registration.ApprovedBy,
		registration.EmergencyContactName, registration.EmergencyContactPhone,
		registration.DietaryRestrictions, registration.MedicalConditions, registration.Notes,
		registration.ID,
	)
	if err != nil {
		return r.handleRegistrationError(err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM player_registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "player_registrations_tournament_id_child_id_key":
			return ErrRegistrationConflict
		case "player_registrations_tournament_id_fkey",
			"player_registrations_child_id_fkey",
			"player_registrations_team_id_fkey":
			return ErrRegistrationRefInvalid
		}
	}
	return err
}
