// Package memory is a process-local store driver. It implements every store
// interface under one mutex, which gives each operation the same all-or-nothing
// behaviour the Postgres driver gets from transactions.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

// DB holds all tables of the memory driver.
type DB struct {
	mu          sync.Mutex
	accounts    *table[uuid.UUID, model.Account]
	emails      map[string]uuid.UUID
	rewards     *table[uuid.UUID, model.Reward]
	redemptions *table[uuid.UUID, model.Redemption]
	pickups     *table[uuid.UUID, model.Pickup]
	challenges  *table[string, model.Challenge]
}

func New() *DB {
	return &DB{
		accounts:    newTable[uuid.UUID, model.Account](),
		emails:      make(map[string]uuid.UUID),
		rewards:     newTable[uuid.UUID, model.Reward](),
		redemptions: newTable[uuid.UUID, model.Redemption](),
		pickups:     newTable[uuid.UUID, model.Pickup](),
		challenges:  newTable[string, model.Challenge](),
	}
}

// cloneReward detaches the quantity pointer from the stored row.
func cloneReward(r model.Reward) model.Reward {
	if r.Quantity != nil {
		q := *r.Quantity
		r.Quantity = &q
	}
	return r
}
