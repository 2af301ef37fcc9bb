package memory

import (
	"context"
	"time"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.ChallengeStore = (*ChallengeRepository)(nil)

type ChallengeRepository struct {
	db *DB
}

func NewChallengeRepository(db *DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Save(_ context.Context, challenge model.Challenge) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.challenges.set(challenge.Email, challenge)
	return nil
}

func (r *ChallengeRepository) Get(_ context.Context, email string) (model.Challenge, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	challenge, ok := r.db.challenges.get(email)
	if !ok {
		return model.Challenge{}, model.ErrNoChallenge
	}
	return challenge, nil
}

func (r *ChallengeRepository) RecordFailure(_ context.Context, email, code string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	challenge, ok := r.db.challenges.get(email)
	if !ok || challenge.Code != code {
		return 0, nil
	}
	challenge.Attempts++
	r.db.challenges.set(email, challenge)
	return challenge.Attempts, nil
}

func (r *ChallengeRepository) Consume(_ context.Context, email, code string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	challenge, ok := r.db.challenges.get(email)
	if !ok || challenge.Code != code {
		return false, nil
	}
	return r.db.challenges.delete(email), nil
}

func (r *ChallengeRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.challenges.deleteWhere(func(c model.Challenge) bool { return c.Expired(now) }), nil
}
