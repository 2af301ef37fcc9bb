package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/tier"
)

// ErrAvatarsDisabled is returned by UploadAvatar when no object storage is configured.
var ErrAvatarsDisabled = errors.New("avatar storage is disabled")

// MaxAvatarSize bounds profile image uploads.
const MaxAvatarSize = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Account struct {
	accounts    model.AccountStore
	storage     model.Storage
	notifier    model.Notifier
	signupBonus int64
	now         Clock
	logger      *logger.Logger
}

// NewAccount creates the account service. storage may be nil, in which case
// avatar uploads are rejected.
func NewAccount(
	accounts model.AccountStore,
	storage model.Storage,
	notifier model.Notifier,
	signupBonus int64,
	logger *logger.Logger,
) *Account {
	return &Account{
		accounts:    accounts,
		storage:     storage,
		notifier:    notifier,
		signupBonus: signupBonus,
		now:         utcNow,
		logger:      logger,
	}
}

func (s *Account) CreateAccount(ctx context.Context, params model.CreateAccountParams) (model.Account, error) {
	params.Email = model.NormalizeEmail(params.Email)
	if err := model.Validate(params); err != nil {
		return model.Account{}, err
	}

	s.logger.Debug("Account service: creating account",
		"email", params.Email)

	exists, err := s.EmailExists(ctx, params.Email)
	if err != nil {
		return model.Account{}, err
	}
	if exists {
		s.logger.Warn("Account service: email already registered",
			"email", params.Email)
		return model.Account{}, model.ErrDuplicateAccount
	}

	now := s.now()
	account, err := s.accounts.Create(ctx, model.Account{
		ID:        uuid.New(),
		Email:     params.Email,
		Name:      params.Name,
		Mobile:    params.Mobile,
		City:      params.City,
		Points:    s.signupBonus,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateAccount) {
			return model.Account{}, err
		}
		s.logger.Error("Account service: failed to create account",
			"email", params.Email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Account service: account created",
		"account_id", account.ID,
		"points", account.Points)

	return account, nil
}

// EmailExists reports whether an account is registered under email.
func (s *Account) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.accounts.GetByEmail(ctx, model.NormalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get account by email: %w", err)
	}
	return true, nil
}

func (s *Account) GetAccount(ctx context.Context, email string) (model.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (s *Account) GetAccountByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

// Overview returns the account together with its tier progress.
func (s *Account) Overview(ctx context.Context, id uuid.UUID) (model.AccountOverview, error) {
	account, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return model.AccountOverview{}, err
	}
	return model.AccountOverview{Account: account, Tier: tier.Of(account.Points)}, nil
}

// AdjustPoints applies a manual balance correction.
func (s *Account) AdjustPoints(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	balance, err := s.accounts.AdjustPoints(ctx, id, delta, s.now())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
			s.logger.Warn("Account service: points adjustment rejected",
				"account_id", id,
				"delta", delta,
				"error", err.Error())
			return 0, err
		}
		return 0, fmt.Errorf("failed to adjust points: %w", err)
	}

	s.logger.Info("Account service: points adjusted",
		"account_id", id,
		"delta", delta,
		"balance", balance)

	return balance, nil
}

func (s *Account) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.Account, error) {
	if err := model.Validate(update); err != nil {
		return model.Account{}, err
	}

	account, err := s.accounts.UpdateProfile(ctx, id, update, s.now())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Account service: profile updated",
		"account_id", id)

	return account, nil
}

// UploadAvatar stores a profile image and points the account at it. The
// previous image, if any, is removed on a best-effort basis.
func (s *Account) UploadAvatar(ctx context.Context, id uuid.UUID, contentType string, data io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", ErrAvatarsDisabled
	}

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", &model.ValidationError{Fields: []string{"content_type:oneof"}}
	}
	if size <= 0 || size > MaxAvatarSize {
		return "", &model.ValidationError{Fields: []string{"size:max"}}
	}

	account, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", id, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, data, size, contentType); err != nil {
		s.logger.Error("Account service: failed to upload avatar",
			"account_id", id,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.accounts.SetProfilePic(ctx, id, key, s.now()); err != nil {
		s.removeObject(ctx, key)
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to set profile picture: %w", err)
	}

	if account.ProfilePic != "" {
		s.removeObject(ctx, account.ProfilePic)
	}

	s.logger.Info("Account service: avatar uploaded",
		"account_id", id,
		"key", key)

	return key, nil
}

// DeleteAccount removes the account with its pickups and redemptions.
func (s *Account) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrAccountNotFound
		}
		s.logger.Error("Account service: failed to delete account",
			"account_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("Account service: account deleted",
		"account_id", id)

	if account.ProfilePic != "" {
		s.removeObject(ctx, account.ProfilePic)
	}

	notify(ctx, s.notifier, s.logger, model.Event{
		Recipient: account.Email,
		Template:  model.TemplateAccountDeleted,
		Data: map[string]any{
			"Name":  account.Name,
			"Email": account.Email,
		},
	})

	return nil
}

func (s *Account) removeObject(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Account service: failed to remove stored object",
			"key", key,
			"error", err.Error())
	}
}
