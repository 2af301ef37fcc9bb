package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.PickupStore = (*PickupRepository)(nil)

type PickupRepository struct {
	db *DB
}

func NewPickupRepository(db *DB) *PickupRepository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) Create(_ context.Context, pickup model.Pickup) (model.Pickup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.accounts.get(pickup.AccountID); !ok {
		return model.Pickup{}, model.ErrAccountNotFound
	}
	r.db.pickups.set(pickup.ID, pickup)
	return pickup, nil
}

func (r *PickupRepository) GetByID(_ context.Context, id uuid.UUID) (model.Pickup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pickup, ok := r.db.pickups.get(id)
	if !ok {
		return model.Pickup{}, model.ErrPickupNotFound
	}
	return pickup, nil
}

func (r *PickupRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.Pickup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pickups := r.db.pickups.filter(func(p model.Pickup) bool { return p.AccountID == accountID })
	slices.Reverse(pickups)
	slices.SortStableFunc(pickups, func(a, b model.Pickup) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return pickups, nil
}

// pending must be called with mu held. Terminal pickups and pickups of other
// accounts are reported as not found.
func (db *DB) pending(id, accountID uuid.UUID) (model.Pickup, error) {
	pickup, ok := db.pickups.get(id)
	if !ok || pickup.AccountID != accountID || pickup.Status != model.PickupStatusPending {
		return model.Pickup{}, model.ErrPickupNotFound
	}
	return pickup, nil
}

func (r *PickupRepository) Cancel(_ context.Context, id, accountID uuid.UUID, at time.Time) (model.Pickup, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pickup, err := r.db.pending(id, accountID)
	if err != nil {
		return model.Pickup{}, err
	}

	pickup.Status = model.PickupStatusCancelled
	pickup.UpdatedAt = at
	r.db.pickups.set(id, pickup)
	return pickup, nil
}

func (r *PickupRepository) Complete(_ context.Context, id, accountID uuid.UUID, points int64, at time.Time) (model.CompletePickupResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pickup, err := r.db.pending(id, accountID)
	if err != nil {
		return model.CompletePickupResult{}, err
	}
	account, ok := r.db.accounts.get(accountID)
	if !ok {
		return model.CompletePickupResult{}, model.ErrAccountNotFound
	}

	account.Points += points
	account.PickupsCompleted++
	account.UpdatedAt = at
	pickup.Status = model.PickupStatusCompleted
	pickup.UpdatedAt = at

	r.db.accounts.set(accountID, account)
	r.db.pickups.set(id, pickup)

	return model.CompletePickupResult{Pickup: pickup, Credited: points, NewBalance: account.Points}, nil
}
