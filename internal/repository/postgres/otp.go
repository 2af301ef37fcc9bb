package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.ChallengeStore = (*ChallengeRepository)(nil)

type ChallengeRepository struct {
	db *Connection
}

func NewChallengeRepository(db *Connection) *ChallengeRepository {
	return &ChallengeRepository{
		db: db,
	}
}

func (r *ChallengeRepository) Save(ctx context.Context, challenge model.Challenge) error {
	const query = `INSERT INTO otp_challenges (email, code, attempts, expires_at, created_at)
				   VALUES ($1, $2, 0, $3, $4)
				   ON CONFLICT (email) DO UPDATE
				   SET code = EXCLUDED.code, attempts = 0, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`

	_, err := r.db.Exec(ctx, query, challenge.Email, challenge.Code, challenge.ExpiresAt, challenge.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) Get(ctx context.Context, email string) (model.Challenge, error) {
	const query = `SELECT email, code, attempts, expires_at, created_at FROM otp_challenges WHERE email = $1`

	var challenge model.Challenge
	err := r.db.QueryRow(ctx, query, email).Scan(
		&challenge.Email, &challenge.Code, &challenge.Attempts, &challenge.ExpiresAt, &challenge.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Challenge{}, model.ErrNoChallenge
		}
		return model.Challenge{}, fmt.Errorf("failed to get challenge: %w", err)
	}
	return challenge, nil
}

func (r *ChallengeRepository) RecordFailure(ctx context.Context, email, code string) (int, error) {
	const query = `UPDATE otp_challenges SET attempts = attempts + 1
				   WHERE email = $1 AND code = $2
				   RETURNING attempts`

	var attempts int
	if err := r.db.QueryRow(ctx, query, email, code).Scan(&attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to record failed attempt: %w", err)
	}
	return attempts, nil
}

func (r *ChallengeRepository) Consume(ctx context.Context, email, code string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM otp_challenges WHERE email = $1 AND code = $2`, email, code)
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ChallengeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM otp_challenges WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired challenges: %w", err)
	}
	return cmd.RowsAffected(), nil
}
