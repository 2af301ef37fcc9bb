package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RewardStore defines persistence operations for the reward catalog.
type RewardStore interface {
	// List returns rewards ordered by ascending cost.
	List(ctx context.Context, activeOnly bool) ([]Reward, error)
	GetByID(ctx context.Context, id uuid.UUID) (Reward, error)
	// DecrementStock takes one unit of a limited reward. Unlimited rewards are
	// left untouched.
	DecrementStock(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, reward Reward) (Reward, error)
}

// Reward is a catalog entry that can be exchanged for points.
type Reward struct {
	ID          uuid.UUID
	Title       string
	Description string
	Cost        int64
	// Quantity is the remaining stock; nil means unlimited.
	Quantity  *int64
	Image     string
	Active    bool
	CreatedAt time.Time
}

// Limited reports whether the reward has finite stock.
func (r Reward) Limited() bool {
	return r.Quantity != nil
}

// InStock reports whether at least one unit can be redeemed.
func (r Reward) InStock() bool {
	return r.Quantity == nil || *r.Quantity > 0
}

// CreateRewardParams describes a new catalog entry.
type CreateRewardParams struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Cost        int64  `validate:"gt=0"`
	Quantity    *int64 `validate:"omitnil,gte=0"`
	Image       string `validate:"omitempty,max=500"`
}
