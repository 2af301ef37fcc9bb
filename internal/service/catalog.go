package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// Catalog manages reward definitions.
type Catalog struct {
	rewards model.RewardStore
	now     Clock
	logger  *logger.Logger
}

func NewCatalog(rewards model.RewardStore, logger *logger.Logger) *Catalog {
	return &Catalog{
		rewards: rewards,
		now:     utcNow,
		logger:  logger,
	}
}

// AddReward creates an active reward. A nil quantity makes it unlimited.
func (s *Catalog) AddReward(ctx context.Context, params model.CreateRewardParams) (model.Reward, error) {
	if err := model.Validate(params); err != nil {
		return model.Reward{}, err
	}

	reward, err := s.rewards.Create(ctx, model.Reward{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Cost:        params.Cost,
		Quantity:    params.Quantity,
		Image:       params.Image,
		Active:      true,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return model.Reward{}, fmt.Errorf("failed to create reward: %w", err)
	}

	s.logger.Info("Catalog service: reward added",
		"reward_id", reward.ID,
		"cost", reward.Cost)

	return reward, nil
}

// Seed adds every reward in params when the catalog is empty. It returns the
// number of rewards added.
func (s *Catalog) Seed(ctx context.Context, params []model.CreateRewardParams) (int, error) {
	existing, err := s.rewards.List(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list rewards: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, p := range params {
		if _, err := s.AddReward(ctx, p); err != nil {
			return 0, fmt.Errorf("failed to seed reward %q: %w", p.Title, err)
		}
	}
	return len(params), nil
}

// DefaultCatalog is the starter catalog used when seeding an empty store.
func DefaultCatalog() []model.CreateRewardParams {
	limited := func(n int64) *int64 { return &n }
	return []model.CreateRewardParams{
		{Title: "Reusable Bamboo Bottle", Description: "Insulated bottle made from bamboo fibre.", Cost: 150, Quantity: limited(50)},
		{Title: "Plant a Tree", Description: "A sapling planted in your name.", Cost: 200},
		{Title: "Organic Cotton Tote", Description: "Hand-printed shopping bag.", Cost: 250, Quantity: limited(100)},
		{Title: "Solar Power Bank", Description: "10000 mAh solar charger.", Cost: 800, Quantity: limited(10)},
	}
}
