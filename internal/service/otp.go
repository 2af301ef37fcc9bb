package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

const codeDigits = 6

var codeSpace = big.NewInt(1_000_000)

// OTP issues and verifies one-time passcodes.
type OTP struct {
	challenges  model.ChallengeStore
	ttl         time.Duration
	maxAttempts int
	now        Clock
	generate   func() (string, error)
	logger     *logger.Logger
}

func NewOTP(challenges model.ChallengeStore, ttl time.Duration, maxAttempts int, logger *logger.Logger) *OTP {
	return &OTP{
		challenges:  challenges,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         utcNow,
		generate:    generateCode,
		logger:      logger,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// Issue creates a fresh code for email, replacing any earlier one.
func (s *OTP) Issue(ctx context.Context, email string) (string, error) {
	code, err := s.generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	now := s.now()
	err = s.challenges.Save(ctx, model.Challenge{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Error("OTP service: failed to save challenge",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to save challenge: %w", err)
	}

	s.logger.Debug("OTP service: challenge issued",
		"email", email)

	return code, nil
}

// Verify checks code against the live challenge for email. A wrong code leaves
// the challenge in place until maxAttempts wrong codes have been tried. Expired
// and exhausted challenges are removed; a correct one is consumed.
func (s *OTP) Verify(ctx context.Context, email, code string) error {
	challenge, err := s.challenges.Get(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNoChallenge) {
			return model.ErrNoChallenge
		}
		return fmt.Errorf("failed to get challenge: %w", err)
	}

	if challenge.Expired(s.now()) {
		s.discard(ctx, challenge)
		return model.ErrChallengeExpired
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		attempts, err := s.challenges.RecordFailure(ctx, email, challenge.Code)
		if err != nil {
			return fmt.Errorf("failed to record failed attempt: %w", err)
		}
		s.logger.Warn("OTP service: code mismatch",
			"email", email,
			"attempts", attempts)
		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			s.discard(ctx, challenge)
			return model.ErrTooManyAttempts
		}
		return model.ErrCodeMismatch
	}

	consumed, err := s.challenges.Consume(ctx, email, code)
	if err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	if !consumed {
		// A concurrent verification won the race.
		return model.ErrNoChallenge
	}

	s.logger.Debug("OTP service: challenge verified",
		"email", email)

	return nil
}

// discard removes challenge only while it is still the live one for its email,
// so a code issued in the meantime survives.
func (s *OTP) discard(ctx context.Context, challenge model.Challenge) {
	if _, err := s.challenges.Consume(ctx, challenge.Email, challenge.Code); err != nil {
		s.logger.Warn("OTP service: failed to discard challenge",
			"email", challenge.Email,
			"error", err.Error())
	}
}
