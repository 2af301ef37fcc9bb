package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PickupStore defines persistence operations for pickups.
type PickupStore interface {
	Create(ctx context.Context, pickup Pickup) (Pickup, error)
	GetByID(ctx context.Context, id uuid.UUID) (Pickup, error)
	// ListByAccount returns pickups newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Pickup, error)
	// Cancel moves a pending pickup owned by accountID to cancelled.
	Cancel(ctx context.Context, id, accountID uuid.UUID, at time.Time) (Pickup, error)
	// Complete moves a pending pickup owned by accountID to completed and
	// credits points to the owner in the same transaction.
	Complete(ctx context.Context, id, accountID uuid.UUID, points int64, at time.Time) (CompletePickupResult, error)
}

// PickupStatus is the lifecycle state of a pickup.
type PickupStatus string

const (
	PickupStatusPending   PickupStatus = "pending"
	PickupStatusCompleted PickupStatus = "completed"
	PickupStatusCancelled PickupStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s PickupStatus) Terminal() bool {
	return s == PickupStatusCompleted || s == PickupStatusCancelled
}

// Pickup is a scheduled e-waste collection.
type Pickup struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Address       string
	PreferredDate time.Time
	PreferredTime string
	Items         string
	ContactName   string
	ContactPhone  string
	Fee           int64
	Status        PickupStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SchedulePickupParams contains the scheduling details of a pickup.
type SchedulePickupParams struct {
	AccountID     uuid.UUID `validate:"required"`
	Address       string    `validate:"required,max=500"`
	PreferredDate time.Time `validate:"required"`
	PreferredTime string    `validate:"required,max=50"`
	Items         string    `validate:"required,max=1000"`
	ContactName   string    `validate:"required,max=100"`
	ContactPhone  string    `validate:"required,max=20"`
}

// CompletePickupResult is returned by a successful completion.
type CompletePickupResult struct {
	Pickup     Pickup
	Credited   int64
	NewBalance int64
}
