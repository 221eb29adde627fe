// Package notify schedules user-facing notifications (daily overview,
// appointment/task/meal reminders) through an external dispatcher.
package notify

import (
	"context"
	"time"
)

// Payload is the user-visible content of a scheduled notification.
type Payload struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	MemberID uint64 `json:"member_id"`
}

// Scheduler registers and cancels notifications with the delivery system.
// Registrations are fire-and-forget; when a setting changes, the caller
// cancels by type tag and re-registers, since individual IDs are not kept.
type Scheduler interface {
	// ScheduleAt registers a notification for delivery at the given time.
	ScheduleAt(ctx context.Context, at time.Time, payload Payload, tag string) error

	// CancelByTag cancels every pending notification carrying the tag.
	CancelByTag(ctx context.Context, tag string) error
}

// NopScheduler is used when no dispatcher is configured. Registrations are
// dropped silently, matching the fire-and-forget contract.
type NopScheduler struct{}

func (NopScheduler) ScheduleAt(context.Context, time.Time, Payload, string) error {
	return nil
}

func (NopScheduler) CancelByTag(context.Context, string) error {
	return nil
}
