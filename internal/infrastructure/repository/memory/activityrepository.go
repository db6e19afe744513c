package memory

import (
	"context"

	"github.com/thinkartha/smileybox/internal/domain/activity"
)

var _ activity.Repository = (*ActivityRepository)(nil)

// ActivityRepository is append-only; activities are immutable, so they are
// shared rather than cloned.
type ActivityRepository struct {
	tables *Tables
}

func NewActivityRepository(tables *Tables) *ActivityRepository {
	return &ActivityRepository{tables: tables}
}

func (r *ActivityRepository) Append(ctx context.Context, a *activity.Activity) error {
	return r.tables.write(func(s *state) error {
		s.activities = append(s.activities, a)
		return nil
	})
}

func (r *ActivityRepository) List(ctx context.Context) ([]*activity.Activity, error) {
	var out []*activity.Activity
	r.tables.read(func(s *state) {
		out = make([]*activity.Activity, 0, len(s.activities))
		for i := len(s.activities) - 1; i >= 0; i-- {
			out = append(out, s.activities[i])
		}
	})
	return out, nil
}
