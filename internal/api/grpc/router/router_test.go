package router

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcctx "github.com/dtroode/ecorewards-server/internal/api/grpc/context"
	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/repository/memory"
	"github.com/dtroode/ecorewards-server/internal/service"
	"github.com/dtroode/ecorewards-server/internal/testutil"
	"github.com/dtroode/ecorewards-server/internal/token"
)

type outbox struct {
	mu     sync.Mutex
	events []model.Event
}

func (o *outbox) Notify(_ context.Context, event model.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *outbox) lastCode(t *testing.T) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Template == model.TemplateOTP {
			return o.events[i].Data["Code"].(string)
		}
	}
	t.Fatal("no code was sent")
	return ""
}

type testEnv struct {
	auth    *rpc.AuthClient
	rewards *rpc.RewardsClient
	health  healthpb.HealthClient
	outbox  *outbox
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	log := testutil.MakeNoopLogger()
	db := memory.New()
	box := &outbox{}

	accountRepo := memory.NewAccountRepository(db)
	rewardRepo := memory.NewRewardRepository(db)

	one := int64(1)
	_, err := service.NewCatalog(rewardRepo, log).Seed(ctx, []model.CreateRewardParams{
		{Title: "Seed Kit", Cost: 100, Quantity: &one},
		{Title: "Solar Lamp", Cost: 900},
	})
	require.NoError(t, err)

	jwt := token.NewJWT("test-secret", time.Hour)
	accounts := service.NewAccount(accountRepo, nil, box, 100, log)
	otp := service.NewOTP(memory.NewChallengeRepository(db), 5*time.Minute, 5, log)

	r := New(Services{
		Auth:        service.NewAuth(accounts, otp, jwt, box, log),
		Accounts:    accounts,
		Redemptions: service.NewRedemption(accountRepo, rewardRepo, memory.NewRedemptionRepository(db), box, log),
		Pickups: service.NewPickup(accountRepo, memory.NewPickupRepository(db), box,
			service.PickupConfig{Fee: 49, PointsPerPickup: 150}, log),
	}, jwt, grpcctx.NewManager(), log)

	lis := bufconn.Listen(1 << 20)
	srv := r.Register()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testEnv{
		auth:    rpc.NewAuthClient(conn),
		rewards: rpc.NewRewardsClient(conn),
		health:  healthpb.NewHealthClient(conn),
		outbox:  box,
	}
}

func (e *testEnv) signup(t *testing.T, email string) context.Context {
	t.Helper()
	ctx := context.Background()

	_, err := e.auth.SendSignupCode(ctx, &rpc.SendCodeRequest{Email: email})
	require.NoError(t, err)

	session, err := e.auth.CompleteSignup(ctx, &rpc.CompleteSignupRequest{
		Email:  email,
		Code:   e.outbox.lastCode(t),
		Name:   "Ravi",
		Mobile: "9876543210",
		City:   "Chennai",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	assert.Equal(t, int64(100), session.Account.Points)

	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+session.AccessToken)
}

func TestRouter_RewardsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rewards.GetOverview(context.Background(), &rpc.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer nope")
	_, err = env.rewards.ListRewards(bad, &rpc.ListRewardsRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_SignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.signup(t, "ravi@example.com")

	exists, err := env.auth.EmailExists(ctx, &rpc.EmailExistsRequest{Email: "RAVI@example.com"})
	require.NoError(t, err)
	assert.True(t, exists.Exists)

	_, err = env.auth.SendSignupCode(ctx, &rpc.SendCodeRequest{Email: "ravi@example.com"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = env.auth.SendLoginCode(ctx, &rpc.SendCodeRequest{Email: "ravi@example.com"})
	require.NoError(t, err)

	_, err = env.auth.CompleteLogin(ctx, &rpc.CompleteLoginRequest{Email: "ravi@example.com", Code: "bad"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	session, err := env.auth.CompleteLogin(ctx, &rpc.CompleteLoginRequest{
		Email: "ravi@example.com",
		Code:  env.outbox.lastCode(t),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	_, err = env.auth.SendLoginCode(ctx, &rpc.SendCodeRequest{Email: "ghost@example.com"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRouter_RedeemAndPickup(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.signup(t, "ravi@example.com")

	overview, err := env.rewards.GetOverview(ctx, &rpc.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Silver", overview.Tier.Current)
	assert.Equal(t, "Gold", overview.Tier.Next)

	catalog, err := env.rewards.ListRewards(ctx, &rpc.ListRewardsRequest{})
	require.NoError(t, err)
	require.Len(t, catalog.Rewards, 2)
	kit := catalog.Rewards[0]
	assert.Equal(t, "Seed Kit", kit.Title)
	require.NotNil(t, kit.Quantity)
	assert.Nil(t, catalog.Rewards[1].Quantity)

	redeemed, err := env.rewards.Redeem(ctx, &rpc.RedeemRequest{RewardID: kit.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), redeemed.Balance)
	assert.Equal(t, "pending", redeemed.Redemption.Status)

	_, err = env.rewards.Redeem(ctx, &rpc.RedeemRequest{RewardID: kit.ID})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = env.rewards.Redeem(ctx, &rpc.RedeemRequest{RewardID: "not-a-uuid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	history, err := env.rewards.ListRedemptions(ctx, &rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, history.Redemptions, 1)
	assert.Equal(t, "Seed Kit", history.Redemptions[0].RewardTitle)

	schedule := &rpc.SchedulePickupRequest{
		Address:      "12 Beach Road",
		Date:         "2030-05-01",
		TimeSlot:     "10:00-12:00",
		Items:        "old laptop",
		ContactName:  "Ravi",
		ContactPhone: "9876543210",
	}
	pickup, err := env.rewards.SchedulePickup(ctx, schedule)
	require.NoError(t, err)
	assert.Equal(t, int64(49), pickup.Fee)
	assert.Equal(t, "2030-05-01", pickup.Date)

	completed, err := env.rewards.CompletePickup(ctx, &rpc.PickupRequest{PickupID: pickup.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(150), completed.Credited)
	assert.Equal(t, int64(150), completed.Balance)

	_, err = env.rewards.CompletePickup(ctx, &rpc.PickupRequest{PickupID: pickup.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	schedule.Date = "01/05/2030"
	_, err = env.rewards.SchedulePickup(ctx, schedule)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	pickups, err := env.rewards.ListPickups(ctx, &rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, pickups.Pickups, 1)
	assert.Equal(t, "completed", pickups.Pickups[0].Status)

	_, err = env.rewards.UploadAvatar(ctx, &rpc.UploadAvatarRequest{ContentType: "image/png", Data: []byte("png")})
	assert.Equal(t, codes.Unimplemented, status.Code(err))

	_, err = env.rewards.DeleteAccount(ctx, &rpc.Empty{})
	require.NoError(t, err)

	_, err = env.rewards.GetOverview(ctx, &rpc.Empty{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"", rpc.AuthServiceName, rpc.RewardsServiceName} {
		resp, err := env.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err, name)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status, name)
	}
}

func TestRouter_Shutdown(t *testing.T) {
	r := New(Services{}, nil, grpcctx.NewManager(), testutil.MakeNoopLogger())
	s := r.Register()
	defer s.Stop()

	r.Shutdown()
	resp, err := r.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: rpc.RewardsServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
