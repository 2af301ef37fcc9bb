package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/ecorewards-server/database"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// Postgres error codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// querier is satisfied by both the pool and an open transaction, so the same
// statement helpers run inside and outside the atomic units.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Connection struct {
	*pgxpool.Pool
	lockTimeout time.Duration
}

// NewConnection opens a pool, applies pending migrations and returns the
// connection. lockTimeout bounds row lock waits inside transactions; zero
// leaves the server default.
func NewConnection(ctx context.Context, dsn string, lockTimeout time.Duration) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		Pool:        pool,
		lockTimeout: lockTimeout,
	}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}

// InTx runs fn inside a read-committed transaction. Domain rejections returned
// by fn pass through unchanged; every other failure, including lock timeouts
// and commit errors, rolls back and comes back as *model.TransactionError.
func (s *Connection) InTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return &model.TransactionError{Op: op, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if s.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", s.lockTimeout.Milliseconds())
		if _, err = tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
			return &model.TransactionError{Op: op, Err: err}
		}
	}

	if err = fn(tx); err != nil {
		if isDomainError(err) {
			return err
		}
		return &model.TransactionError{Op: op, Err: err}
	}

	if err = tx.Commit(ctx); err != nil {
		return &model.TransactionError{Op: op, Err: err}
	}

	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrConflict) ||
		errors.Is(err, model.ErrValidation)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
