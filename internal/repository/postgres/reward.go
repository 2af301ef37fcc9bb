package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.RewardStore = (*RewardRepository)(nil)

const rewardColumns = `id, title, description, cost, quantity, image, active, created_at`

type RewardRepository struct {
	db *Connection
}

func NewRewardRepository(db *Connection) *RewardRepository {
	return &RewardRepository{
		db: db,
	}
}

func scanReward(row pgx.Row) (model.Reward, error) {
	var reward model.Reward
	err := row.Scan(
		&reward.ID, &reward.Title, &reward.Description, &reward.Cost, &reward.Quantity,
		&reward.Image, &reward.Active, &reward.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reward{}, model.ErrRewardNotFound
		}
		return model.Reward{}, err
	}
	return reward, nil
}

func (r *RewardRepository) List(ctx context.Context, activeOnly bool) ([]model.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards
			  WHERE active OR NOT $1
			  ORDER BY cost ASC, title ASC`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	rewards := make([]model.Reward, 0)
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	return rewards, nil
}

func (r *RewardRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`

	reward, err := scanReward(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Reward{}, fmt.Errorf("failed to get reward by id: %w", err)
	}
	return reward, err
}

func (r *RewardRepository) DecrementStock(ctx context.Context, id uuid.UUID) error {
	if err := decrementStock(ctx, r.db, id); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	return nil
}

func decrementStock(ctx context.Context, q querier, id uuid.UUID) error {
	const query = `UPDATE rewards SET quantity = quantity - 1
				   WHERE id = $1 AND quantity IS NOT NULL AND quantity > 0`

	cmd, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var quantity *int64
	err = q.QueryRow(ctx, `SELECT quantity FROM rewards WHERE id = $1`, id).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrRewardNotFound
		}
		return err
	}
	if quantity == nil {
		return nil
	}
	return model.ErrOutOfStock
}

func (r *RewardRepository) Create(ctx context.Context, reward model.Reward) (model.Reward, error) {
	query := `INSERT INTO rewards (id, title, description, cost, quantity, image, active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + rewardColumns

	saved, err := scanReward(r.db.QueryRow(ctx, query,
		reward.ID, reward.Title, reward.Description, reward.Cost, reward.Quantity,
		reward.Image, reward.Active, reward.CreatedAt,
	))
	if err != nil {
		return model.Reward{}, fmt.Errorf("failed to create reward: %w", err)
	}

	return saved, nil
}
