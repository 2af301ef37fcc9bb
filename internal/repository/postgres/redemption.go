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

var _ model.RedemptionStore = (*RedemptionRepository)(nil)

type RedemptionRepository struct {
	db *Connection
}

func NewRedemptionRepository(db *Connection) *RedemptionRepository {
	return &RedemptionRepository{
		db: db,
	}
}

// Redeem locks the account row and then the reward row, always in that order,
// and re-checks every precondition before writing.
func (r *RedemptionRepository) Redeem(ctx context.Context, accountID, rewardID uuid.UUID, at time.Time) (model.RedeemResult, error) {
	var result model.RedeemResult

	err := r.db.InTx(ctx, "redeem", func(tx pgx.Tx) error {
		var points int64
		err := tx.QueryRow(ctx, `SELECT points FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&points)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		reward, err := scanReward(tx.QueryRow(ctx,
			`SELECT `+rewardColumns+` FROM rewards WHERE id = $1 FOR UPDATE`, rewardID))
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to lock reward: %w", err)
		}
		if !reward.Active {
			return model.ErrRewardNotFound
		}
		if !reward.InStock() {
			return model.ErrOutOfStock
		}
		if points < reward.Cost {
			return model.ErrInsufficientPoints
		}

		balance, err := adjustPoints(ctx, tx, accountID, -reward.Cost, at)
		if err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}

		redemption := model.Redemption{
			ID:          uuid.New(),
			AccountID:   accountID,
			RewardID:    rewardID,
			RewardTitle: reward.Title,
			Cost:        reward.Cost,
			Status:      model.RedemptionStatusPending,
			CreatedAt:   at,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO redemptions (id, account_id, reward_id, cost, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			redemption.ID, redemption.AccountID, redemption.RewardID, redemption.Cost,
			string(redemption.Status), redemption.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert redemption: %w", err)
		}

		if reward.Limited() {
			if err := decrementStock(ctx, tx, rewardID); err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		result = model.RedeemResult{Redemption: redemption, NewBalance: balance}
		return nil
	})
	if err != nil {
		return model.RedeemResult{}, err
	}

	return result, nil
}

func (r *RedemptionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Redemption, error) {
	const query = `
		SELECT rd.id, rd.account_id, rd.reward_id, rw.title, rd.cost, rd.status, rd.created_at
		FROM redemptions rd
		JOIN rewards rw ON rw.id = rd.reward_id
		WHERE rd.account_id = $1
		ORDER BY rd.created_at DESC, rd.id DESC`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := make([]model.Redemption, 0)
	for rows.Next() {
		var redemption model.Redemption
		err := rows.Scan(
			&redemption.ID, &redemption.AccountID, &redemption.RewardID, &redemption.RewardTitle,
			&redemption.Cost, &redemption.Status, &redemption.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, redemption)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}

	return redemptions, nil
}
