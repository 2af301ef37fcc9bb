package model

import (
	"context"
	"time"
)

// ChallengeStore keeps at most one live verification challenge per email.
type ChallengeStore interface {
	// Save stores the challenge, replacing any previous one for the same email.
	Save(ctx context.Context, challenge Challenge) error
	Get(ctx context.Context, email string) (Challenge, error)
	// RecordFailure counts a wrong guess against the challenge that still holds
	// code and returns the new count. It returns 0 when that challenge is gone.
	RecordFailure(ctx context.Context, email, code string) (int, error)
	// Consume deletes the challenge only if it still holds code. It reports
	// whether a challenge was removed.
	Consume(ctx context.Context, email, code string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Challenge is a one-time passcode sent to an email address.
type Challenge struct {
	Email     string
	Code      string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the challenge is past its expiry at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
