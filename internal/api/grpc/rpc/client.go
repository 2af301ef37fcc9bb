package rpc

import (
	"context"

	"google.golang.org/grpc"
)

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthClient calls ecorewards.Auth.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func (c *AuthClient) SendSignupCode(ctx context.Context, in *SendCodeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AuthSendSignupCode, in, opts)
}

func (c *AuthClient) CompleteSignup(ctx context.Context, in *CompleteSignupRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthCompleteSignup, in, opts)
}

func (c *AuthClient) SendLoginCode(ctx context.Context, in *SendCodeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AuthSendLoginCode, in, opts)
}

func (c *AuthClient) CompleteLogin(ctx context.Context, in *CompleteLoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthCompleteLogin, in, opts)
}

func (c *AuthClient) EmailExists(ctx context.Context, in *EmailExistsRequest, opts ...grpc.CallOption) (*EmailExistsResponse, error) {
	return invoke[EmailExistsResponse](ctx, c.cc, AuthEmailExists, in, opts)
}

// RewardsClient calls ecorewards.Rewards. Every call needs a bearer token in
// the outgoing "authorization" metadata.
type RewardsClient struct {
	cc grpc.ClientConnInterface
}

func NewRewardsClient(cc grpc.ClientConnInterface) *RewardsClient {
	return &RewardsClient{cc: cc}
}

func (c *RewardsClient) GetOverview(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*OverviewResponse, error) {
	return invoke[OverviewResponse](ctx, c.cc, RewardsGetOverview, in, opts)
}

func (c *RewardsClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Account, error) {
	return invoke[Account](ctx, c.cc, RewardsUpdateProfile, in, opts)
}

func (c *RewardsClient) UploadAvatar(ctx context.Context, in *UploadAvatarRequest, opts ...grpc.CallOption) (*UploadAvatarResponse, error) {
	return invoke[UploadAvatarResponse](ctx, c.cc, RewardsUploadAvatar, in, opts)
}

func (c *RewardsClient) DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, RewardsDeleteAccount, in, opts)
}

func (c *RewardsClient) ListRewards(ctx context.Context, in *ListRewardsRequest, opts ...grpc.CallOption) (*ListRewardsResponse, error) {
	return invoke[ListRewardsResponse](ctx, c.cc, RewardsListRewards, in, opts)
}

func (c *RewardsClient) Redeem(ctx context.Context, in *RedeemRequest, opts ...grpc.CallOption) (*RedeemResponse, error) {
	return invoke[RedeemResponse](ctx, c.cc, RewardsRedeem, in, opts)
}

func (c *RewardsClient) ListRedemptions(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListRedemptionsResponse, error) {
	return invoke[ListRedemptionsResponse](ctx, c.cc, RewardsListRedemptions, in, opts)
}

func (c *RewardsClient) SchedulePickup(ctx context.Context, in *SchedulePickupRequest, opts ...grpc.CallOption) (*Pickup, error) {
	return invoke[Pickup](ctx, c.cc, RewardsSchedulePickup, in, opts)
}

func (c *RewardsClient) CancelPickup(ctx context.Context, in *PickupRequest, opts ...grpc.CallOption) (*Pickup, error) {
	return invoke[Pickup](ctx, c.cc, RewardsCancelPickup, in, opts)
}

func (c *RewardsClient) CompletePickup(ctx context.Context, in *PickupRequest, opts ...grpc.CallOption) (*CompletePickupResponse, error) {
	return invoke[CompletePickupResponse](ctx, c.cc, RewardsCompletePickup, in, opts)
}

func (c *RewardsClient) ListPickups(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListPickupsResponse, error) {
	return invoke[ListPickupsResponse](ctx, c.cc, RewardsListPickups, in, opts)
}
