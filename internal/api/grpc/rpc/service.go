package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Service names.
const (
	AuthServiceName    = "ecorewards.Auth"
	RewardsServiceName = "ecorewards.Rewards"
)

// Full method names.
const (
	AuthSendSignupCode = "/" + AuthServiceName + "/SendSignupCode"
	AuthCompleteSignup = "/" + AuthServiceName + "/CompleteSignup"
	AuthSendLoginCode  = "/" + AuthServiceName + "/SendLoginCode"
	AuthCompleteLogin  = "/" + AuthServiceName + "/CompleteLogin"
	AuthEmailExists    = "/" + AuthServiceName + "/EmailExists"

	RewardsGetOverview     = "/" + RewardsServiceName + "/GetOverview"
	RewardsUpdateProfile   = "/" + RewardsServiceName + "/UpdateProfile"
	RewardsUploadAvatar    = "/" + RewardsServiceName + "/UploadAvatar"
	RewardsDeleteAccount   = "/" + RewardsServiceName + "/DeleteAccount"
	RewardsListRewards     = "/" + RewardsServiceName + "/ListRewards"
	RewardsRedeem          = "/" + RewardsServiceName + "/Redeem"
	RewardsListRedemptions = "/" + RewardsServiceName + "/ListRedemptions"
	RewardsSchedulePickup  = "/" + RewardsServiceName + "/SchedulePickup"
	RewardsCancelPickup    = "/" + RewardsServiceName + "/CancelPickup"
	RewardsCompletePickup  = "/" + RewardsServiceName + "/CompletePickup"
	RewardsListPickups     = "/" + RewardsServiceName + "/ListPickups"
)

// AuthServer serves signup and login by emailed one-time codes.
type AuthServer interface {
	SendSignupCode(context.Context, *SendCodeRequest) (*Empty, error)
	CompleteSignup(context.Context, *CompleteSignupRequest) (*SessionResponse, error)
	SendLoginCode(context.Context, *SendCodeRequest) (*Empty, error)
	CompleteLogin(context.Context, *CompleteLoginRequest) (*SessionResponse, error)
	EmailExists(context.Context, *EmailExistsRequest) (*EmailExistsResponse, error)
}

// RewardsServer serves the authenticated account's ledger.
type RewardsServer interface {
	GetOverview(context.Context, *Empty) (*OverviewResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Account, error)
	UploadAvatar(context.Context, *UploadAvatarRequest) (*UploadAvatarResponse, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)
	ListRewards(context.Context, *ListRewardsRequest) (*ListRewardsResponse, error)
	Redeem(context.Context, *RedeemRequest) (*RedeemResponse, error)
	ListRedemptions(context.Context, *Empty) (*ListRedemptionsResponse, error)
	SchedulePickup(context.Context, *SchedulePickupRequest) (*Pickup, error)
	CancelPickup(context.Context, *PickupRequest) (*Pickup, error)
	CompletePickup(context.Context, *PickupRequest) (*CompletePickupResponse, error)
	ListPickups(context.Context, *Empty) (*ListPickupsResponse, error)
}

// unary builds a method descriptor that decodes Req, runs the interceptor
// chain and dispatches to call.
func unary[S, Req, Resp any](fullMethod, name string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AuthServiceDesc describes ecorewards.Auth.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthSendSignupCode, "SendSignupCode", AuthServer.SendSignupCode),
		unary(AuthCompleteSignup, "CompleteSignup", AuthServer.CompleteSignup),
		unary(AuthSendLoginCode, "SendLoginCode", AuthServer.SendLoginCode),
		unary(AuthCompleteLogin, "CompleteLogin", AuthServer.CompleteLogin),
		unary(AuthEmailExists, "EmailExists", AuthServer.EmailExists),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecorewards/auth",
}

// RewardsServiceDesc describes ecorewards.Rewards.
var RewardsServiceDesc = grpc.ServiceDesc{
	ServiceName: RewardsServiceName,
	HandlerType: (*RewardsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(RewardsGetOverview, "GetOverview", RewardsServer.GetOverview),
		unary(RewardsUpdateProfile, "UpdateProfile", RewardsServer.UpdateProfile),
		unary(RewardsUploadAvatar, "UploadAvatar", RewardsServer.UploadAvatar),
		unary(RewardsDeleteAccount, "DeleteAccount", RewardsServer.DeleteAccount),
		unary(RewardsListRewards, "ListRewards", RewardsServer.ListRewards),
		unary(RewardsRedeem, "Redeem", RewardsServer.Redeem),
		unary(RewardsListRedemptions, "ListRedemptions", RewardsServer.ListRedemptions),
		unary(RewardsSchedulePickup, "SchedulePickup", RewardsServer.SchedulePickup),
		unary(RewardsCancelPickup, "CancelPickup", RewardsServer.CancelPickup),
		unary(RewardsCompletePickup, "CompletePickup", RewardsServer.CompletePickup),
		unary(RewardsListPickups, "ListPickups", RewardsServer.ListPickups),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecorewards/rewards",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterRewardsServer(s grpc.ServiceRegistrar, srv RewardsServer) {
	s.RegisterService(&RewardsServiceDesc, srv)
}
