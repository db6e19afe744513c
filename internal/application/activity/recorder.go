// Package activity appends to and reads the audit feed.
package activity

import (
	"context"
	"fmt"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

var _ common.ActivityRecorder = (*Recorder)(nil)

// Recorder stamps and appends activities. It is not exposed to callers of
// the store; only mutations record.
type Recorder struct {
	repo   activity.Repository
	clock  biztime.Clock
	logger logger.Interface
}

func NewRecorder(repo activity.Repository, clock biztime.Clock, logger logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (r *Recorder) Record(ctx context.Context, activityType activity.Type, description, userID, ticketID string) error {
	a, err := activity.NewActivity(id.NewActivityID(), activityType, description, userID, ticketID, r.clock())
	if err != nil {
		return fmt.Errorf("failed to build activity: %w", err)
	}
	if err := r.repo.Append(ctx, a); err != nil {
		r.logger.Errorw("failed to append activity", "type", activityType, "error", err)
		return fmt.Errorf("failed to append activity: %w", err)
	}
	r.logger.Debugw("activity recorded",
		"activity_id", a.ID(),
		"type", activityType,
		"ticket_id", ticketID,
	)
	return nil
}
