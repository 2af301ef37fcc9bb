package handler

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// AccountService defines profile operations on the caller's account.
type AccountService interface {
	Overview(ctx context.Context, id uuid.UUID) (model.AccountOverview, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.Account, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, data io.Reader, size int64) (string, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// RedemptionService defines catalog browsing and redemption.
type RedemptionService interface {
	ListRewards(ctx context.Context, activeOnly bool) ([]model.Reward, error)
	Redeem(ctx context.Context, accountID, rewardID uuid.UUID) (model.RedeemResult, error)
	History(ctx context.Context, accountID uuid.UUID) ([]model.Redemption, error)
}

// PickupService defines the pickup lifecycle.
type PickupService interface {
	Schedule(ctx context.Context, params model.SchedulePickupParams) (model.Pickup, error)
	Cancel(ctx context.Context, id, accountID uuid.UUID) (model.Pickup, error)
	Complete(ctx context.Context, id, accountID uuid.UUID) (model.CompletePickupResult, error)
	List(ctx context.Context, accountID uuid.UUID) ([]model.Pickup, error)
}

var _ rpc.RewardsServer = (*Rewards)(nil)

// Rewards serves ecorewards.Rewards for the authenticated account.
type Rewards struct {
	accounts       AccountService
	redemptions    RedemptionService
	pickups        PickupService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewRewards(
	accounts AccountService,
	redemptions RedemptionService,
	pickups PickupService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Rewards {
	return &Rewards{
		accounts:       accounts,
		redemptions:    redemptions,
		pickups:        pickups,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Rewards) accountID(ctx context.Context) (uuid.UUID, error) {
	id, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing account")
	}
	return id, nil
}

func (h *Rewards) GetOverview(ctx context.Context, _ *rpc.Empty) (*rpc.OverviewResponse, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	overview, err := h.accounts.Overview(ctx, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.OverviewResponse{
		Account: toAccount(overview.Account),
		Tier:    toTier(overview.Tier),
	}, nil
}

func (h *Rewards) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.Account, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	account, err := h.accounts.UpdateProfile(ctx, accountID, model.ProfileUpdate{
		Name:   req.Name,
		Mobile: req.Mobile,
		City:   req.City,
	})
	if err != nil {
		return nil, handleError(err)
	}

	out := toAccount(account)
	return &out, nil
}

func (h *Rewards) UploadAvatar(ctx context.Context, req *rpc.UploadAvatarRequest) (*rpc.UploadAvatarResponse, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	key, err := h.accounts.UploadAvatar(ctx, accountID, req.ContentType, bytes.NewReader(req.Data), int64(len(req.Data)))
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.UploadAvatarResponse{Key: key}, nil
}

func (h *Rewards) DeleteAccount(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.accounts.DeleteAccount(ctx, accountID); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Rewards handler: account deleted", "account_id", accountID)

	return &rpc.Empty{}, nil
}

func (h *Rewards) ListRewards(ctx context.Context, req *rpc.ListRewardsRequest) (*rpc.ListRewardsResponse, error) {
	rewards, err := h.redemptions.ListRewards(ctx, !req.IncludeInactive)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.ListRewardsResponse{Rewards: mapSlice(rewards, toReward)}, nil
}

func (h *Rewards) Redeem(ctx context.Context, req *rpc.RedeemRequest) (*rpc.RedeemResponse, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	rewardID, err := uuid.Parse(req.RewardID)
	if err != nil {
		return nil, invalidArgument("reward_id")
	}

	result, err := h.redemptions.Redeem(ctx, accountID, rewardID)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.RedeemResponse{
		Redemption: toRedemption(result.Redemption),
		Balance:    result.NewBalance,
	}, nil
}

func (h *Rewards) ListRedemptions(ctx context.Context, _ *rpc.Empty) (*rpc.ListRedemptionsResponse, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	history, err := h.redemptions.History(ctx, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.ListRedemptionsResponse{Redemptions: mapSlice(history, toRedemption)}, nil
}

func (h *Rewards) SchedulePickup(ctx context.Context, req *rpc.SchedulePickupRequest) (*rpc.Pickup, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, invalidArgument("date")
	}

	pickup, err := h.pickups.Schedule(ctx, model.SchedulePickupParams{
		AccountID:     accountID,
		Address:       req.Address,
		PreferredDate: date,
		PreferredTime: req.TimeSlot,
		Items:         req.Items,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
	})
	if err != nil {
		return nil, handleError(err)
	}

	out := toPickup(pickup)
	return &out, nil
}

func (h *Rewards) CancelPickup(ctx context.Context, req *rpc.PickupRequest) (*rpc.Pickup, error) {
	accountID, pickupID, err := h.pickupTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	pickup, err := h.pickups.Cancel(ctx, pickupID, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	out := toPickup(pickup)
	return &out, nil
}

func (h *Rewards) CompletePickup(ctx context.Context, req *rpc.PickupRequest) (*rpc.CompletePickupResponse, error) {
	accountID, pickupID, err := h.pickupTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := h.pickups.Complete(ctx, pickupID, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.CompletePickupResponse{
		Pickup:   toPickup(result.Pickup),
		Credited: result.Credited,
		Balance:  result.NewBalance,
	}, nil
}

func (h *Rewards) ListPickups(ctx context.Context, _ *rpc.Empty) (*rpc.ListPickupsResponse, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	pickups, err := h.pickups.List(ctx, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return &rpc.ListPickupsResponse{Pickups: mapSlice(pickups, toPickup)}, nil
}

func (h *Rewards) pickupTarget(ctx context.Context, req *rpc.PickupRequest) (uuid.UUID, uuid.UUID, error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	pickupID, err := uuid.Parse(req.PickupID)
	if err != nil {
		return uuid.Nil, uuid.Nil, invalidArgument("pickup_id")
	}

	return accountID, pickupID, nil
}
