package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/ecorewards-server/internal/model"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewAccountRepository(db).db)
	assert.Equal(t, db, NewRewardRepository(db).db)
	assert.Equal(t, db, NewRedemptionRepository(db).db)
	assert.Equal(t, db, NewPickupRepository(db).db)
	assert.Equal(t, db, NewChallengeRepository(db).db)
}

func TestConnection_PingWithoutPool(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(t.Context()))
	assert.NoError(t, conn.Close())
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "not found", err: model.ErrAccountNotFound, want: true},
		{name: "wrapped conflict", err: fmt.Errorf("failed to debit: %w", model.ErrInsufficientBalance), want: true},
		{name: "out of stock", err: model.ErrOutOfStock, want: true},
		{name: "validation", err: &model.ValidationError{Fields: []string{"name:required"}}, want: true},
		{name: "driver error", err: errors.New("connection reset"), want: false},
		{name: "lock timeout", err: &pgconn.PgError{Code: "55P03"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDomainError(tt.err))
		})
	}
}

func TestPgErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation})

	assert.Equal(t, codeUniqueViolation, pgErrorCode(wrapped))
	assert.Equal(t, "", pgErrorCode(errors.New("plain")))
}
