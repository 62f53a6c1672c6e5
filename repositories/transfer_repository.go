package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erzer12/y-ultimate/models"
	"github.com/lib/pq"
)

var ErrTransferChildInvalid = errors.New("transfer child conflict or invalid")

// TransferRepository is the append-only programme transfer log. Entries are
// never updated or deleted; history is read back in chronological order.
type TransferRepository interface {
	Append(ctx context.Context, transfer *models.ProfileTransfer) error
	ListByChild(ctx context.Context, childID int) ([]models.ProfileTransfer, error)
}

type postgresTransferRepository struct {
	db *sql.DB
}

func NewPostgresTransferRepository(db *sql.DB) TransferRepository {
	return &postgresTransferRepository{db: db}
}

func (r *postgresTransferRepository) Append(ctx context.Context, transfer *models.ProfileTransfer) error {
	query := `
		INSERT INTO profile_transfers
			(child_id, from_school, to_school, from_community, to_community,
			 reason, transferred_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		transfer.ChildID, transfer.FromSchool, transfer.ToSchool,
		transfer.FromCommunity, transfer.ToCommunity,
		transfer.Reason, transfer.TransferredAt, transfer.RecordedBy,
	).Scan(&transfer.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "profile_transfers_child_id_fkey" {
		return ErrTransferChildInvalid
	}
	return err
}

func (r *postgresTransferRepository) ListByChild(ctx context.Context, childID int) ([]models.ProfileTransfer, error) {
	query := `
		SELECT id, child_id, from_school, to_school, from_community, to_community,
		       reason, transferred_at, recorded_by
		FROM profile_transfers
		WHERE child_id = $1
		ORDER BY transferred_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers for child %d: %w", childID, err)
	}
	defer rows.Close()

	transfers := make([]models.ProfileTransfer, 0)
	for rows.Next() {
		var t models.ProfileTransfer
		if err := rows.Scan(
			&t.ID, &t.ChildID, &t.FromSchool, &t.ToSchool, &t.FromCommunity, &t.ToCommunity,
			&t.Reason, &t.TransferredAt, &t.RecordedBy,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
