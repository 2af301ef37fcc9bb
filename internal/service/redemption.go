package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

type Redemption struct {
	accounts    model.AccountStore
	rewards     model.RewardStore
	redemptions model.RedemptionStore
	notifier    model.Notifier
	now         Clock
	logger      *logger.Logger
}

func NewRedemption(
	accounts model.AccountStore,
	rewards model.RewardStore,
	redemptions model.RedemptionStore,
	notifier model.Notifier,
	logger *logger.Logger,
) *Redemption {
	return &Redemption{
		accounts:    accounts,
		rewards:     rewards,
		redemptions: redemptions,
		notifier:    notifier,
		now:         utcNow,
		logger:      logger,
	}
}

// Redeem exchanges points for a reward. The checks here reject the common
// failures early; the store repeats them under row locks before writing.
func (s *Redemption) Redeem(ctx context.Context, accountID, rewardID uuid.UUID) (model.RedeemResult, error) {
	s.logger.Debug("Redemption service: redeeming reward",
		"account_id", accountID,
		"reward_id", rewardID)

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.RedeemResult{}, model.ErrAccountNotFound
		}
		return model.RedeemResult{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	reward, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.RedeemResult{}, model.ErrRewardNotFound
		}
		return model.RedeemResult{}, fmt.Errorf("failed to get reward by id: %w", err)
	}
	if !reward.Active {
		return model.RedeemResult{}, model.ErrRewardNotFound
	}
	if !reward.InStock() {
		s.logger.Warn("Redemption service: reward out of stock",
			"reward_id", rewardID)
		return model.RedeemResult{}, model.ErrOutOfStock
	}
	if account.Points < reward.Cost {
		s.logger.Warn("Redemption service: insufficient points",
			"account_id", accountID,
			"points", account.Points,
			"cost", reward.Cost)
		return model.RedeemResult{}, model.ErrInsufficientPoints
	}

	result, err := s.redemptions.Redeem(ctx, accountID, rewardID, s.now())
	if err != nil {
		if model.IsRetryable(err) {
			s.logger.Error("Redemption service: redemption transaction failed",
				"account_id", accountID,
				"reward_id", rewardID,
				"error", err.Error())
		} else {
			s.logger.Warn("Redemption service: redemption rejected",
				"account_id", accountID,
				"reward_id", rewardID,
				"error", err.Error())
		}
		return model.RedeemResult{}, err
	}

	s.logger.Info("Redemption service: reward redeemed",
		"account_id", accountID,
		"reward_id", rewardID,
		"redemption_id", result.Redemption.ID,
		"balance", result.NewBalance)

	notify(ctx, s.notifier, s.logger, model.Event{
		Recipient: account.Email,
		Template:  model.TemplateRewardRedeemed,
		Data: map[string]any{
			"Name":         account.Name,
			"Reward":       reward.Title,
			"Cost":         result.Redemption.Cost,
			"Balance":      result.NewBalance,
			"RedemptionID": result.Redemption.ID.String(),
		},
	})

	return result, nil
}

func (s *Redemption) ListRewards(ctx context.Context, activeOnly bool) ([]model.Reward, error) {
	rewards, err := s.rewards.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

// History returns the account's redemptions, newest first.
func (s *Redemption) History(ctx context.Context, accountID uuid.UUID) ([]model.Redemption, error) {
	redemptions, err := s.redemptions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	return redemptions, nil
}
