package service

import (
	"context"
	"fmt"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

type emailParams struct {
	Email string `validate:"required,email,max=254"`
}

// Auth signs accounts up and in with emailed one-time codes.
type Auth struct {
	accounts *Account
	otp      *OTP
	tokens   model.TokenManager
	notifier model.Notifier
	logger   *logger.Logger
}

func NewAuth(
	accounts *Account,
	otp *OTP,
	tokens model.TokenManager,
	notifier model.Notifier,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accounts: accounts,
		otp:      otp,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// SendSignupCode emails a code to an address that is not registered yet.
func (a *Auth) SendSignupCode(ctx context.Context, email string) error {
	email, err := normalizedEmail(email)
	if err != nil {
		return err
	}

	exists, err := a.accounts.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrDuplicateAccount
	}

	return a.sendCode(ctx, email, "signup")
}

// CompleteSignup verifies the code sent to params.Email, creates the account
// and returns it with an access token.
func (a *Auth) CompleteSignup(ctx context.Context, code string, params model.CreateAccountParams) (model.Account, string, error) {
	params.Email = model.NormalizeEmail(params.Email)
	if err := model.Validate(params); err != nil {
		return model.Account{}, "", err
	}

	if err := a.otp.Verify(ctx, params.Email, code); err != nil {
		return model.Account{}, "", err
	}

	account, err := a.accounts.CreateAccount(ctx, params)
	if err != nil {
		return model.Account{}, "", err
	}

	token, err := a.issueToken(account)
	if err != nil {
		return model.Account{}, "", err
	}

	return account, token, nil
}

// SendLoginCode emails a code to a registered address.
func (a *Auth) SendLoginCode(ctx context.Context, email string) error {
	email, err := normalizedEmail(email)
	if err != nil {
		return err
	}

	if _, err := a.accounts.GetAccount(ctx, email); err != nil {
		return err
	}

	return a.sendCode(ctx, email, "login")
}

// CompleteLogin verifies the emailed code and returns the account with an
// access token.
func (a *Auth) CompleteLogin(ctx context.Context, email, code string) (model.Account, string, error) {
	email, err := normalizedEmail(email)
	if err != nil {
		return model.Account{}, "", err
	}

	if err := a.otp.Verify(ctx, email, code); err != nil {
		return model.Account{}, "", err
	}

	account, err := a.accounts.GetAccount(ctx, email)
	if err != nil {
		return model.Account{}, "", err
	}

	token, err := a.issueToken(account)
	if err != nil {
		return model.Account{}, "", err
	}

	a.logger.Info("Auth service: account signed in",
		"account_id", account.ID)

	return account, token, nil
}

func (a *Auth) EmailExists(ctx context.Context, email string) (bool, error) {
	email, err := normalizedEmail(email)
	if err != nil {
		return false, err
	}
	return a.accounts.EmailExists(ctx, email)
}

func (a *Auth) sendCode(ctx context.Context, email, purpose string) error {
	code, err := a.otp.Issue(ctx, email)
	if err != nil {
		return err
	}

	a.logger.Info("Auth service: verification code sent",
		"email", email,
		"purpose", purpose)

	notify(ctx, a.notifier, a.logger, model.Event{
		Recipient: email,
		Template:  model.TemplateOTP,
		Data: map[string]any{
			"Code":    code,
			"Purpose": purpose,
			"Minutes": int(a.otp.ttl.Minutes()),
		},
	})

	return nil
}

func (a *Auth) issueToken(account model.Account) (string, error) {
	token, err := a.tokens.GenerateAccessToken(account.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate access token",
			"account_id", account.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func normalizedEmail(email string) (string, error) {
	params := emailParams{Email: model.NormalizeEmail(email)}
	if err := model.Validate(params); err != nil {
		return "", err
	}
	return params.Email, nil
}
