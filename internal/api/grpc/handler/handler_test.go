package handler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/mocks"
	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/testutil"
)

type authStub struct {
	account model.Account
	token   string
	err     error
	params  model.CreateAccountParams
}

func (s *authStub) SendSignupCode(context.Context, string) error { return s.err }
func (s *authStub) SendLoginCode(context.Context, string) error  { return s.err }

func (s *authStub) CompleteSignup(_ context.Context, _ string, params model.CreateAccountParams) (model.Account, string, error) {
	s.params = params
	return s.account, s.token, s.err
}

func (s *authStub) CompleteLogin(context.Context, string, string) (model.Account, string, error) {
	return s.account, s.token, s.err
}

func (s *authStub) EmailExists(context.Context, string) (bool, error) {
	return s.err == nil, s.err
}

func TestAuth_CompleteSignup(t *testing.T) {
	id := uuid.New()
	stub := &authStub{account: model.Account{ID: id, Email: "a@b.co", Points: 100}, token: "tok"}
	h := NewAuth(stub, testutil.MakeNoopLogger())

	resp, err := h.CompleteSignup(context.Background(), &rpc.CompleteSignupRequest{
		Email: "a@b.co", Code: "123456", Name: "A", Mobile: "1", City: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, id.String(), resp.Account.ID)
	assert.Equal(t, int64(100), resp.Account.Points)
	assert.Equal(t, model.CreateAccountParams{Name: "A", Mobile: "1", City: "C", Email: "a@b.co"}, stub.params)
}

func TestAuth_Errors(t *testing.T) {
	h := NewAuth(&authStub{err: model.ErrCodeMismatch}, testutil.MakeNoopLogger())

	_, err := h.CompleteLogin(context.Background(), &rpc.CompleteLoginRequest{Email: "a@b.co", Code: "1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.SendSignupCode(context.Background(), &rpc.SendCodeRequest{Email: "a@b.co"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

type accountStub struct {
	overview model.AccountOverview
	uploaded []byte
	err      error
}

func (s *accountStub) Overview(context.Context, uuid.UUID) (model.AccountOverview, error) {
	return s.overview, s.err
}

func (s *accountStub) UpdateProfile(context.Context, uuid.UUID, model.ProfileUpdate) (model.Account, error) {
	return s.overview.Account, s.err
}

func (s *accountStub) UploadAvatar(_ context.Context, _ uuid.UUID, _ string, data io.Reader, size int64) (string, error) {
	b, _ := io.ReadAll(data)
	s.uploaded = b
	return "avatars/key.png", s.err
}

func (s *accountStub) DeleteAccount(context.Context, uuid.UUID) error { return s.err }

type pickupStub struct {
	scheduled model.SchedulePickupParams
}

func (s *pickupStub) Schedule(_ context.Context, params model.SchedulePickupParams) (model.Pickup, error) {
	s.scheduled = params
	return model.Pickup{ID: uuid.New(), PreferredDate: params.PreferredDate, Status: model.PickupStatusPending}, nil
}

func (s *pickupStub) Cancel(context.Context, uuid.UUID, uuid.UUID) (model.Pickup, error) {
	return model.Pickup{}, model.ErrPickupNotFound
}

func (s *pickupStub) Complete(context.Context, uuid.UUID, uuid.UUID) (model.CompletePickupResult, error) {
	return model.CompletePickupResult{}, model.ErrPickupNotFound
}

func (s *pickupStub) List(context.Context, uuid.UUID) ([]model.Pickup, error) { return nil, nil }

func TestRewards_RequiresAccount(t *testing.T) {
	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetAccountIDFromContext", mock.Anything).Return(uuid.Nil, false)

	h := NewRewards(&accountStub{}, nil, &pickupStub{}, ctxMgr, testutil.MakeNoopLogger())

	_, err := h.GetOverview(context.Background(), &rpc.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.CancelPickup(context.Background(), &rpc.PickupRequest{PickupID: uuid.NewString()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRewards_Overview(t *testing.T) {
	accountID := uuid.New()
	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetAccountIDFromContext", mock.Anything).Return(accountID, true)

	accounts := &accountStub{overview: model.AccountOverview{
		Account: model.Account{ID: accountID, Points: 250},
		Tier:    model.TierProgress{Current: "Gold", Next: "Platinum", Percent: 16.67, PointsToNext: 250},
	}}
	h := NewRewards(accounts, nil, &pickupStub{}, ctxMgr, testutil.MakeNoopLogger())

	resp, err := h.GetOverview(context.Background(), &rpc.Empty{})
	require.NoError(t, err)
	assert.Equal(t, int64(250), resp.Account.Points)
	assert.Equal(t, "Gold", resp.Tier.Current)
	assert.Equal(t, int64(250), resp.Tier.PointsToNext)

	avatar, err := h.UploadAvatar(context.Background(), &rpc.UploadAvatarRequest{ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "avatars/key.png", avatar.Key)
	assert.Equal(t, []byte{1, 2, 3}, accounts.uploaded)
}

func TestRewards_Pickups(t *testing.T) {
	accountID := uuid.New()
	ctxMgr := mocks.NewContextManager(t)
	ctxMgr.On("GetAccountIDFromContext", mock.Anything).Return(accountID, true)

	pickups := &pickupStub{}
	h := NewRewards(&accountStub{}, nil, pickups, ctxMgr, testutil.MakeNoopLogger())

	resp, err := h.SchedulePickup(context.Background(), &rpc.SchedulePickupRequest{
		Address: "1 Road", Date: "2031-02-03", TimeSlot: "morning", Items: "tv", ContactName: "N", ContactPhone: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "2031-02-03", resp.Date)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, accountID, pickups.scheduled.AccountID)
	assert.Equal(t, time.Date(2031, 2, 3, 0, 0, 0, 0, time.UTC), pickups.scheduled.PreferredDate)

	_, err = h.SchedulePickup(context.Background(), &rpc.SchedulePickupRequest{Date: "tomorrow"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.CancelPickup(context.Background(), &rpc.PickupRequest{PickupID: "x"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.CompletePickup(context.Background(), &rpc.PickupRequest{PickupID: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err := h.ListPickups(context.Background(), &rpc.Empty{})
	require.NoError(t, err)
	assert.NotNil(t, list.Pickups)
	assert.Empty(t, list.Pickups)
}
