package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	// AdjustPoints atomically adds delta (which may be negative) to the balance
	// and returns the new balance. It fails with ErrInsufficientBalance instead
	// of letting the balance drop below zero.
	//
	// Mutating methods stamp updated_at with at.
	AdjustPoints(ctx context.Context, id uuid.UUID, delta int64, at time.Time) (int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate, at time.Time) (Account, error)
	SetProfilePic(ctx context.Context, id uuid.UUID, key string, at time.Time) error
	// Delete removes the account together with its pickups and redemptions.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Account is a registered user and their point balance.
type Account struct {
	ID               uuid.UUID
	Email            string
	Name             string
	Mobile           string
	City             string
	ProfilePic       string
	Points           int64
	PickupsCompleted int64
	EwasteRecycled   float64
	CO2Saved         float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateAccountParams contains registration fields.
type CreateAccountParams struct {
	Name   string `validate:"required,max=100"`
	Mobile string `validate:"required,max=20"`
	City   string `validate:"required,max=100"`
	Email  string `validate:"required,email,max=254"`
}

// ProfileUpdate contains editable profile fields.
type ProfileUpdate struct {
	Name   string `validate:"required,max=100"`
	Mobile string `validate:"required,max=20"`
	City   string `validate:"required,max=100"`
}

// AccountOverview is an account as displayed, with its loyalty tier.
type AccountOverview struct {
	Account Account
	Tier    TierProgress
}

// TierProgress describes where a balance sits within the loyalty tiers.
type TierProgress struct {
	Current      string
	Next         string
	Percent      float64
	PointsToNext int64
}
