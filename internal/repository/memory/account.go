package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, ok := r.db.emails[email]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	account, _ := r.db.accounts.get(id)
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts.get(id)
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.emails[account.Email]; exists {
		return model.Account{}, model.ErrDuplicateAccount
	}
	if _, exists := r.db.accounts.get(account.ID); exists {
		return model.Account{}, model.ErrDuplicateAccount
	}

	r.db.accounts.set(account.ID, account)
	r.db.emails[account.Email] = account.ID
	return account, nil
}

func (r *AccountRepository) AdjustPoints(_ context.Context, id uuid.UUID, delta int64, at time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.adjustPoints(id, delta, at)
}

// adjustPoints must be called with mu held.
func (db *DB) adjustPoints(id uuid.UUID, delta int64, at time.Time) (int64, error) {
	account, ok := db.accounts.get(id)
	if !ok {
		return 0, model.ErrAccountNotFound
	}
	if account.Points+delta < 0 {
		return 0, model.ErrInsufficientBalance
	}

	account.Points += delta
	account.UpdatedAt = at
	db.accounts.set(id, account)
	return account.Points, nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id uuid.UUID, update model.ProfileUpdate, at time.Time) (model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts.get(id)
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}

	account.Name = update.Name
	account.Mobile = update.Mobile
	account.City = update.City
	account.UpdatedAt = at
	r.db.accounts.set(id, account)
	return account, nil
}

func (r *AccountRepository) SetProfilePic(_ context.Context, id uuid.UUID, key string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts.get(id)
	if !ok {
		return model.ErrAccountNotFound
	}

	account.ProfilePic = key
	account.UpdatedAt = at
	r.db.accounts.set(id, account)
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	account, ok := r.db.accounts.get(id)
	if !ok {
		return model.ErrAccountNotFound
	}

	r.db.redemptions.deleteWhere(func(rd model.Redemption) bool { return rd.AccountID == id })
	r.db.pickups.deleteWhere(func(p model.Pickup) bool { return p.AccountID == id })
	r.db.accounts.delete(id)
	delete(r.db.emails, account.Email)
	return nil
}
