package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.RedemptionStore = (*RedemptionRepository)(nil)

type RedemptionRepository struct {
	db *DB
}

func NewRedemptionRepository(db *DB) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

// Redeem validates and applies the whole redemption while holding the lock,
// so nothing is written unless every step succeeds.
func (r *RedemptionRepository) Redeem(_ context.Context, accountID, rewardID uuid.UUID, at time.Time) (model.RedeemResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts.get(accountID)
	if !ok {
		return model.RedeemResult{}, model.ErrAccountNotFound
	}
	reward, ok := r.db.rewards.get(rewardID)
	if !ok || !reward.Active {
		return model.RedeemResult{}, model.ErrRewardNotFound
	}
	if !reward.InStock() {
		return model.RedeemResult{}, model.ErrOutOfStock
	}
	if account.Points < reward.Cost {
		return model.RedeemResult{}, model.ErrInsufficientPoints
	}

	balance, err := r.db.adjustPoints(accountID, -reward.Cost, at)
	if err != nil {
		return model.RedeemResult{}, err
	}
	if err := r.db.decrementStock(rewardID); err != nil {
		return model.RedeemResult{}, err
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
	r.db.redemptions.set(redemption.ID, redemption)

	return model.RedeemResult{Redemption: redemption, NewBalance: balance}, nil
}

func (r *RedemptionRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.Redemption, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	redemptions := r.db.redemptions.filter(func(rd model.Redemption) bool { return rd.AccountID == accountID })
	slices.Reverse(redemptions)
	slices.SortStableFunc(redemptions, func(a, b model.Redemption) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return redemptions, nil
}
