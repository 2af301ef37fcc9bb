package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RedemptionStore persists redemptions and owns the redemption transaction.
type RedemptionStore interface {
	// Redeem runs the debit, insert and stock decrement as one atomic unit,
	// re-validating balance and stock under row locks. The redemption is
	// created at at.
	Redeem(ctx context.Context, accountID, rewardID uuid.UUID, at time.Time) (RedeemResult, error)
	// ListByAccount returns redemptions newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Redemption, error)
}

// RedemptionStatus is the fulfilment state of a redemption.
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusFulfilled RedemptionStatus = "fulfilled"
	RedemptionStatusCancelled RedemptionStatus = "cancelled"
)

// Redemption records one successful exchange of points for a reward.
type Redemption struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	RewardID    uuid.UUID
	RewardTitle string
	// Cost is the reward cost at redemption time.
	Cost      int64
	Status    RedemptionStatus
	CreatedAt time.Time
}

// RedeemResult is returned by a successful redemption.
type RedeemResult struct {
	Redemption Redemption
	NewBalance int64
}
