package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// PickupConfig holds the amounts charged and credited for pickups.
type PickupConfig struct {
	Fee             int64
	PointsPerPickup int64
}

type Pickup struct {
	accounts model.AccountStore
	pickups  model.PickupStore
	notifier model.Notifier
	config   PickupConfig
	now      Clock
	logger   *logger.Logger
}

func NewPickup(
	accounts model.AccountStore,
	pickups model.PickupStore,
	notifier model.Notifier,
	config PickupConfig,
	logger *logger.Logger,
) *Pickup {
	return &Pickup{
		accounts: accounts,
		pickups:  pickups,
		notifier: notifier,
		config:   config,
		now:      utcNow,
		logger:   logger,
	}
}

// Schedule creates a pending pickup for an existing account.
func (s *Pickup) Schedule(ctx context.Context, params model.SchedulePickupParams) (model.Pickup, error) {
	if err := model.Validate(params); err != nil {
		return model.Pickup{}, err
	}

	account, err := s.accounts.GetByID(ctx, params.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Pickup{}, model.ErrAccountNotFound
		}
		return model.Pickup{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	now := s.now()
	d := params.PreferredDate
	pickup, err := s.pickups.Create(ctx, model.Pickup{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Address:       params.Address,
		PreferredDate: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		PreferredTime: params.PreferredTime,
		Items:         params.Items,
		ContactName:   params.ContactName,
		ContactPhone:  params.ContactPhone,
		Fee:           s.config.Fee,
		Status:        model.PickupStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Pickup{}, model.ErrAccountNotFound
		}
		s.logger.Error("Pickup service: failed to create pickup",
			"account_id", account.ID,
			"error", err.Error())
		return model.Pickup{}, fmt.Errorf("failed to create pickup: %w", err)
	}

	s.logger.Info("Pickup service: pickup scheduled",
		"account_id", account.ID,
		"pickup_id", pickup.ID)

	notify(ctx, s.notifier, s.logger, model.Event{
		Recipient: account.Email,
		Template:  model.TemplatePickupScheduled,
		Data: map[string]any{
			"Name":     params.ContactName,
			"Date":     pickup.PreferredDate.Format(time.DateOnly),
			"Time":     pickup.PreferredTime,
			"Items":    pickup.Items,
			"Fee":      pickup.Fee,
			"PickupID": pickup.ID.String(),
		},
	})

	return pickup, nil
}

// Cancel moves a pending pickup to cancelled. Unknown, foreign and terminal
// pickups all fail with ErrPickupNotFound.
func (s *Pickup) Cancel(ctx context.Context, id, accountID uuid.UUID) (model.Pickup, error) {
	pickup, err := s.pickups.Cancel(ctx, id, accountID, s.now())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Pickup service: no pending pickup to cancel",
				"pickup_id", id,
				"account_id", accountID)
			return model.Pickup{}, model.ErrPickupNotFound
		}
		return model.Pickup{}, fmt.Errorf("failed to cancel pickup: %w", err)
	}

	s.logger.Info("Pickup service: pickup cancelled",
		"pickup_id", id,
		"account_id", accountID)

	s.notifyAccount(ctx, accountID, model.TemplatePickupCancelled, map[string]any{
		"PickupID": pickup.ID.String(),
	})

	return pickup, nil
}

// Complete moves a pending pickup to completed and credits the owner in the
// same atomic step. A second call finds no pending pickup and credits nothing.
func (s *Pickup) Complete(ctx context.Context, id, accountID uuid.UUID) (model.CompletePickupResult, error) {
	result, err := s.pickups.Complete(ctx, id, accountID, s.config.PointsPerPickup, s.now())
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			s.logger.Warn("Pickup service: no pending pickup to complete",
				"pickup_id", id,
				"account_id", accountID)
			return model.CompletePickupResult{}, model.ErrPickupNotFound
		case model.IsRetryable(err):
			s.logger.Error("Pickup service: completion transaction failed",
				"pickup_id", id,
				"error", err.Error())
			return model.CompletePickupResult{}, err
		default:
			return model.CompletePickupResult{}, fmt.Errorf("failed to complete pickup: %w", err)
		}
	}

	s.logger.Info("Pickup service: pickup completed",
		"pickup_id", id,
		"account_id", accountID,
		"credited", result.Credited,
		"balance", result.NewBalance)

	s.notifyAccount(ctx, accountID, model.TemplatePickupCompleted, map[string]any{
		"PickupID": result.Pickup.ID.String(),
		"Credited": result.Credited,
		"Balance":  result.NewBalance,
	})

	return result, nil
}

// List returns the account's pickups, newest first.
func (s *Pickup) List(ctx context.Context, accountID uuid.UUID) ([]model.Pickup, error) {
	pickups, err := s.pickups.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}
	return pickups, nil
}

func (s *Pickup) notifyAccount(ctx context.Context, accountID uuid.UUID, template string, data map[string]any) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		s.logger.Warn("Pickup service: cannot resolve notification recipient",
			"account_id", accountID,
			"error", err.Error())
		return
	}
	data["Name"] = account.Name
	notify(ctx, s.notifier, s.logger, model.Event{
		Recipient: account.Email,
		Template:  template,
		Data:      data,
	})
}
