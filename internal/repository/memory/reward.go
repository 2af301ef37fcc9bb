package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.RewardStore = (*RewardRepository)(nil)

type RewardRepository struct {
	db *DB
}

func NewRewardRepository(db *DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) List(_ context.Context, activeOnly bool) ([]model.Reward, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rewards := r.db.rewards.filter(func(rw model.Reward) bool { return rw.Active || !activeOnly })
	for i := range rewards {
		rewards[i] = cloneReward(rewards[i])
	}
	slices.SortStableFunc(rewards, func(a, b model.Reward) int {
		return cmp.Or(cmp.Compare(a.Cost, b.Cost), cmp.Compare(a.Title, b.Title))
	})
	return rewards, nil
}

func (r *RewardRepository) GetByID(_ context.Context, id uuid.UUID) (model.Reward, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	reward, ok := r.db.rewards.get(id)
	if !ok {
		return model.Reward{}, model.ErrRewardNotFound
	}
	return cloneReward(reward), nil
}

func (r *RewardRepository) DecrementStock(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.decrementStock(id)
}

// decrementStock must be called with mu held.
func (db *DB) decrementStock(id uuid.UUID) error {
	reward, ok := db.rewards.get(id)
	if !ok {
		return model.ErrRewardNotFound
	}
	if reward.Quantity == nil {
		return nil
	}
	if *reward.Quantity <= 0 {
		return model.ErrOutOfStock
	}

	q := *reward.Quantity - 1
	reward.Quantity = &q
	db.rewards.set(id, reward)
	return nil
}

func (r *RewardRepository) Create(_ context.Context, reward model.Reward) (model.Reward, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	reward = cloneReward(reward)
	r.db.rewards.set(reward.ID, reward)
	return cloneReward(reward), nil
}
