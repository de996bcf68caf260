// Package notify emits Postgres NOTIFY events after collection writes.
// internal/watch listens on the same channels; together they form the
// change-notification streams the read projections refresh on.
package notify

import (
	"context"
	"fmt"

	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
)

// Channel names. The payload is always the affected venue id, so listeners
// filter per venue without parsing.
const (
	ChannelSchedules    = "schedule_changes"
	ChannelReservations = "reservation_changes"
	ChannelAccessEvents = "access_event_changes"
)

// Emit raises a notification on channel with the venue id as payload. Inside
// a transaction the notification is delivered only on commit.
func Emit(ctx context.Context, executor dbmetrics.DBExecutor, channel, venueID string) error {
	if _, err := executor.ExecContext(ctx, "SELECT pg_notify($1, $2)", channel, venueID); err != nil {
		return fmt.Errorf("notify: emit on %s: %w", channel, err)
	}
	return nil
}
