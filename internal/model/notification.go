package model

import "context"

// Notifier delivers events to an out-of-band channel (e-mail). Notify must not
// block on delivery and must not report delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Template names understood by the notification worker.
const (
	TemplateOTP             = "otp"
	TemplatePickupScheduled = "pickup_scheduled"
	TemplatePickupCancelled = "pickup_cancelled"
	TemplatePickupCompleted = "pickup_completed"
	TemplateRewardRedeemed  = "reward_redeemed"
	TemplateAccountDeleted  = "account_deleted"
)

// Event is emitted after a state change has been committed.
type Event struct {
	Recipient string
	Template  string
	Data      map[string]any
}
