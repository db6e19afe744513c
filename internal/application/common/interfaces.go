package common

import (
	"context"

	"github.com/thinkartha/smileybox/internal/domain/activity"
)

// ActivityRecorder appends an entry to the audit feed. Mutations call it
// inside their transaction so a failed mutation leaves no entry behind.
type ActivityRecorder interface {
	Record(ctx context.Context, activityType activity.Type, description, userID, ticketID string) error
}
