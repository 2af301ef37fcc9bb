package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, email, name, mobile, city, profile_pic, points, pickups_completed,
	ewaste_recycled, co2_saved, created_at, updated_at`

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID, &account.Email, &account.Name, &account.Mobile, &account.City, &account.ProfilePic,
		&account.Points, &account.PickupsCompleted, &account.EwasteRecycled, &account.CO2Saved,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, err
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, err
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, email, name, mobile, city, profile_pic, points, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Email, account.Name, account.Mobile, account.City, account.ProfilePic,
		account.Points, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return model.Account{}, model.ErrDuplicateAccount
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) AdjustPoints(ctx context.Context, id uuid.UUID, delta int64, at time.Time) (int64, error) {
	balance, err := adjustPoints(ctx, r.db, id, delta, at)
	if err != nil && !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrConflict) {
		return 0, fmt.Errorf("failed to adjust points: %w", err)
	}
	return balance, err
}

// adjustPoints applies delta in a single conditional statement so the balance
// can never be observed below zero, then tells a missing account apart from an
// insufficient balance.
func adjustPoints(ctx context.Context, q querier, id uuid.UUID, delta int64, at time.Time) (int64, error) {
	const query = `UPDATE accounts SET points = points + $2, updated_at = $3
				   WHERE id = $1 AND points + $2 >= 0
				   RETURNING points`

	var balance int64
	err := q.QueryRow(ctx, query, id, delta, at).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, model.ErrAccountNotFound
	}
	return 0, model.ErrInsufficientBalance
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate, at time.Time) (model.Account, error) {
	query := `UPDATE accounts SET name = $2, mobile = $3, city = $4, updated_at = $5
			  WHERE id = $1
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, update.Name, update.Mobile, update.City, at))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return account, err
}

func (r *AccountRepository) SetProfilePic(ctx context.Context, id uuid.UUID, key string, at time.Time) error {
	const query = `UPDATE accounts SET profile_pic = $2, updated_at = $3 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, key, at)
	if err != nil {
		return fmt.Errorf("failed to set profile picture: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// Delete removes the account with its redemptions and pickups in one transaction.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.InTx(ctx, "delete account", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM redemptions WHERE account_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete redemptions: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pickups WHERE account_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete pickups: %w", err)
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return model.ErrAccountNotFound
		}
		return nil
	})
}
