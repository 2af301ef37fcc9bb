package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ecorewards-server/internal/mocks"
	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/testutil"
	"github.com/dtroode/ecorewards-server/internal/tier"
)

func validAccountParams() model.CreateAccountParams {
	return model.CreateAccountParams{
		Name:   "Asha",
		Mobile: "9000000000",
		City:   "Pune",
		Email:  " Asha@Example.com ",
	}
}

func TestAccount_CreateAccount(t *testing.T) {
	ctx := context.Background()
	accounts := mocks.NewAccountStore(t)

	accounts.On("GetByEmail", mock.Anything, "asha@example.com").Return(model.Account{}, model.ErrAccountNotFound)
	accounts.On("Create", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
		return a.Email == "asha@example.com" && a.Points == 100 && a.ID != uuid.Nil
	})).Return(func(_ context.Context, a model.Account) model.Account { return a }, nil)

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	account, err := s.CreateAccount(ctx, validAccountParams())
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.Points)
	assert.Equal(t, "asha@example.com", account.Email)
}

func TestAccount_CreateAccount_Duplicate(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	accounts.On("GetByEmail", mock.Anything, "asha@example.com").Return(model.Account{ID: uuid.New()}, nil)

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	_, err := s.CreateAccount(context.Background(), validAccountParams())
	assert.ErrorIs(t, err, model.ErrDuplicateAccount)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestAccount_CreateAccount_InvalidParamsTouchNothing(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	params := validAccountParams()
	params.Email = "not-an-email"
	params.City = ""

	_, err := s.CreateAccount(context.Background(), params)
	require.ErrorIs(t, err, model.ErrValidation)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"email:email", "city:required"}, verr.Fields)
}

func TestAccount_GetAccount(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	want := model.Account{ID: uuid.New(), Email: "a@x.com"}
	accounts.On("GetByEmail", mock.Anything, "a@x.com").Return(want, nil)
	accounts.On("GetByEmail", mock.Anything, "b@x.com").Return(model.Account{}, model.ErrAccountNotFound)
	accounts.On("GetByEmail", mock.Anything, "c@x.com").Return(model.Account{}, errors.New("boom"))

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	got, err := s.GetAccount(context.Background(), "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)

	_, err = s.GetAccount(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, model.ErrAccountNotFound)

	_, err = s.GetAccount(context.Background(), "c@x.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestAccount_Overview(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	id := uuid.New()
	accounts.On("GetByID", mock.Anything, id).Return(model.Account{ID: id, Points: 350}, nil)

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	overview, err := s.Overview(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, tier.Gold, overview.Tier.Current)
	assert.Equal(t, tier.Platinum, overview.Tier.Next)
	assert.InDelta(t, 50.0, overview.Tier.Percent, 0.001)
}

func TestAccount_AdjustPoints(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	id := uuid.New()
	accounts.On("AdjustPoints", mock.Anything, id, int64(-500), mock.AnythingOfType("time.Time")).Return(int64(0), model.ErrInsufficientBalance)
	accounts.On("AdjustPoints", mock.Anything, id, int64(25), mock.AnythingOfType("time.Time")).Return(int64(125), nil)

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	_, err := s.AdjustPoints(context.Background(), id, -500)
	assert.ErrorIs(t, err, model.ErrInsufficientBalance)

	balance, err := s.AdjustPoints(context.Background(), id, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(125), balance)
}

func TestAccount_UpdateProfile(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	id := uuid.New()
	update := model.ProfileUpdate{Name: "B", Mobile: "1", City: "Goa"}
	accounts.On("UpdateProfile", mock.Anything, id, update, mock.AnythingOfType("time.Time")).Return(model.Account{ID: id, City: "Goa"}, nil)

	s := NewAccount(accounts, nil, nil, 100, testutil.MakeNoopLogger())

	got, err := s.UpdateProfile(context.Background(), id, update)
	require.NoError(t, err)
	assert.Equal(t, "Goa", got.City)

	_, err = s.UpdateProfile(context.Background(), id, model.ProfileUpdate{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAccount_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	accounts := mocks.NewAccountStore(t)
	storage := mocks.NewStorage(t)
	id := uuid.New()
	body := bytes.NewReader([]byte("png"))

	accounts.On("GetByID", mock.Anything, id).Return(model.Account{ID: id, ProfilePic: "avatars/old.png"}, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("avatars/") && key[len(key)-4:] == ".png"
	}), body, int64(3), "image/png").Return(nil)
	accounts.On("SetProfilePic", mock.Anything, id, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
	storage.On("Delete", mock.Anything, "avatars/old.png").Return(errors.New("gone"))

	s := NewAccount(accounts, storage, nil, 100, testutil.MakeNoopLogger())

	key, err := s.UploadAvatar(ctx, id, "image/png", body, 3)
	require.NoError(t, err)
	assert.Contains(t, key, id.String())
}

func TestAccount_UploadAvatar_Rejected(t *testing.T) {
	id := uuid.New()

	s := NewAccount(mocks.NewAccountStore(t), nil, nil, 100, testutil.MakeNoopLogger())
	_, err := s.UploadAvatar(context.Background(), id, "image/png", bytes.NewReader(nil), 1)
	assert.ErrorIs(t, err, ErrAvatarsDisabled)

	s = NewAccount(mocks.NewAccountStore(t), mocks.NewStorage(t), nil, 100, testutil.MakeNoopLogger())
	_, err = s.UploadAvatar(context.Background(), id, "application/pdf", bytes.NewReader(nil), 1)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.UploadAvatar(context.Background(), id, "image/png", bytes.NewReader(nil), MaxAvatarSize+1)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAccount_DeleteAccount(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	storage := mocks.NewStorage(t)
	notifier := mocks.NewNotifier(t)
	id := uuid.New()

	accounts.On("GetByID", mock.Anything, id).Return(model.Account{ID: id, Email: "a@x.com", ProfilePic: "avatars/p.png"}, nil)
	accounts.On("Delete", mock.Anything, id).Return(nil)
	storage.On("Delete", mock.Anything, "avatars/p.png").Return(nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e model.Event) bool {
		return e.Template == model.TemplateAccountDeleted && e.Recipient == "a@x.com"
	})).Return()

	s := NewAccount(accounts, storage, notifier, 100, testutil.MakeNoopLogger())

	require.NoError(t, s.DeleteAccount(context.Background(), id))
}

func TestAccount_DeleteAccount_NotFound(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	id := uuid.New()
	accounts.On("GetByID", mock.Anything, id).Return(model.Account{}, model.ErrAccountNotFound)

	s := NewAccount(accounts, nil, mocks.NewNotifier(t), 100, testutil.MakeNoopLogger())

	assert.ErrorIs(t, s.DeleteAccount(context.Background(), id), model.ErrAccountNotFound)
}
