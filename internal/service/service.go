// Package service implements the ledger operations on top of the store
// interfaces: accounts, redemptions, pickups, verification codes and sign-in.
package service

import (
	"context"
	"time"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// Clock returns the current time. Services take one so tests can move time.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// notify emits an event for a change that has already been committed.
// Delivery is the notifier's business; nothing here waits on it.
func notify(ctx context.Context, n model.Notifier, log *logger.Logger, event model.Event) {
	if n == nil || event.Recipient == "" {
		return
	}
	log.Debug("Notification: event emitted",
		"template", event.Template,
		"recipient", event.Recipient)
	n.Notify(context.WithoutCancel(ctx), event)
}
