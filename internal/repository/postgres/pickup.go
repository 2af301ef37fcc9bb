package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.PickupStore = (*PickupRepository)(nil)

const pickupColumns = `id, account_id, address, preferred_date, preferred_time, items,
	contact_name, contact_phone, fee, status, created_at, updated_at`

type PickupRepository struct {
	db *Connection
}

func NewPickupRepository(db *Connection) *PickupRepository {
	return &PickupRepository{
		db: db,
	}
}

func scanPickup(row pgx.Row) (model.Pickup, error) {
	var pickup model.Pickup
	err := row.Scan(
		&pickup.ID, &pickup.AccountID, &pickup.Address, &pickup.PreferredDate, &pickup.PreferredTime,
		&pickup.Items, &pickup.ContactName, &pickup.ContactPhone, &pickup.Fee, &pickup.Status,
		&pickup.CreatedAt, &pickup.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pickup{}, model.ErrPickupNotFound
		}
		return model.Pickup{}, err
	}
	return pickup, nil
}

func (r *PickupRepository) Create(ctx context.Context, pickup model.Pickup) (model.Pickup, error) {
	query := `INSERT INTO pickups (id, account_id, address, preferred_date, preferred_time, items,
			  contact_name, contact_phone, fee, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + pickupColumns

	saved, err := scanPickup(r.db.QueryRow(ctx, query,
		pickup.ID, pickup.AccountID, pickup.Address, pickup.PreferredDate, pickup.PreferredTime,
		pickup.Items, pickup.ContactName, pickup.ContactPhone, pickup.Fee, string(pickup.Status),
		pickup.CreatedAt, pickup.UpdatedAt,
	))
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return model.Pickup{}, model.ErrAccountNotFound
		}
		return model.Pickup{}, fmt.Errorf("failed to create pickup: %w", err)
	}

	return saved, nil
}

func (r *PickupRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1`

	pickup, err := scanPickup(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Pickup{}, fmt.Errorf("failed to get pickup by id: %w", err)
	}
	return pickup, err
}

func (r *PickupRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups
			  WHERE account_id = $1
			  ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}
	defer rows.Close()

	pickups := make([]model.Pickup, 0)
	for rows.Next() {
		pickup, err := scanPickup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pickup: %w", err)
		}
		pickups = append(pickups, pickup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}

	return pickups, nil
}

// transition moves a pending pickup owned by accountID to status. Terminal
// pickups do not match and are reported as not found.
func transition(ctx context.Context, q querier, id, accountID uuid.UUID, status model.PickupStatus, at time.Time) (model.Pickup, error) {
	query := `UPDATE pickups SET status = $3, updated_at = $4
			  WHERE id = $1 AND account_id = $2 AND status = 'pending'
			  RETURNING ` + pickupColumns

	return scanPickup(q.QueryRow(ctx, query, id, accountID, string(status), at))
}

func (r *PickupRepository) Cancel(ctx context.Context, id, accountID uuid.UUID, at time.Time) (model.Pickup, error) {
	pickup, err := transition(ctx, r.db, id, accountID, model.PickupStatusCancelled, at)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Pickup{}, fmt.Errorf("failed to cancel pickup: %w", err)
	}
	return pickup, err
}

func (r *PickupRepository) Complete(ctx context.Context, id, accountID uuid.UUID, points int64, at time.Time) (model.CompletePickupResult, error) {
	var result model.CompletePickupResult

	err := r.db.InTx(ctx, "complete pickup", func(tx pgx.Tx) error {
		pickup, err := transition(ctx, tx, id, accountID, model.PickupStatusCompleted, at)
		if err != nil {
			return err
		}

		const credit = `UPDATE accounts
						SET points = points + $2, pickups_completed = pickups_completed + 1, updated_at = $3
						WHERE id = $1
						RETURNING points`

		var balance int64
		if err := tx.QueryRow(ctx, credit, accountID, points, at).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrAccountNotFound
			}
			return fmt.Errorf("failed to credit account: %w", err)
		}

		result = model.CompletePickupResult{Pickup: pickup, Credited: points, NewBalance: balance}
		return nil
	})
	if err != nil {
		return model.CompletePickupResult{}, err
	}

	return result, nil
}
