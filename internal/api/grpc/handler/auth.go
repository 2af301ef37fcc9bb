// Package handler implements the gRPC services on top of the domain services.
package handler

import (
	"context"

	"github.com/dtroode/ecorewards-server/internal/api/grpc/rpc"
	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// AuthService defines signup and login by emailed code.
type AuthService interface {
	SendSignupCode(ctx context.Context, email string) error
	CompleteSignup(ctx context.Context, code string, params model.CreateAccountParams) (model.Account, string, error)
	SendLoginCode(ctx context.Context, email string) error
	CompleteLogin(ctx context.Context, email, code string) (model.Account, string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

var _ rpc.AuthServer = (*Auth)(nil)

// Auth serves ecorewards.Auth.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

func (h *Auth) SendSignupCode(ctx context.Context, req *rpc.SendCodeRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing signup code request", "email", req.Email)

	if err := h.authService.SendSignupCode(ctx, req.Email); err != nil {
		return nil, handleError(err)
	}

	return &rpc.Empty{}, nil
}

func (h *Auth) CompleteSignup(ctx context.Context, req *rpc.CompleteSignupRequest) (*rpc.SessionResponse, error) {
	h.logger.Debug("Auth handler: processing signup completion", "email", req.Email)

	account, token, err := h.authService.CompleteSignup(ctx, req.Code, model.CreateAccountParams{
		Name:   req.Name,
		Mobile: req.Mobile,
		City:   req.City,
		Email:  req.Email,
	})
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: signup completed", "account_id", account.ID)

	return &rpc.SessionResponse{AccessToken: token, Account: toAccount(account)}, nil
}

func (h *Auth) SendLoginCode(ctx context.Context, req *rpc.SendCodeRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing login code request", "email", req.Email)

	if err := h.authService.SendLoginCode(ctx, req.Email); err != nil {
		return nil, handleError(err)
	}

	return &rpc.Empty{}, nil
}

func (h *Auth) CompleteLogin(ctx context.Context, req *rpc.CompleteLoginRequest) (*rpc.SessionResponse, error) {
	h.logger.Debug("Auth handler: processing login completion", "email", req.Email)

	account, token, err := h.authService.CompleteLogin(ctx, req.Email, req.Code)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed", "account_id", account.ID)

	return &rpc.SessionResponse{AccessToken: token, Account: toAccount(account)}, nil
}

func (h *Auth) EmailExists(ctx context.Context, req *rpc.EmailExistsRequest) (*rpc.EmailExistsResponse, error) {
	exists, err := h.authService.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, handleError(err)
	}
	return &rpc.EmailExistsResponse{Exists: exists}, nil
}
