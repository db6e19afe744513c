package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type AddTimeEntryCommand struct {
	ActorID     string  `json:"-"`
	TicketID    string  `json:"ticket_id" validate:"required"`
	Hours       float64 `json:"hours" validate:"gt=0"`
	Description string  `json:"description" validate:"required,notblank"`
	// Date is YYYY-MM-DD in the business timezone; empty means today.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AddTimeEntryResult struct {
	TimeEntryID string
	HoursWorked float64
	UpdatedAt   time.Time
}

type AddTimeEntryUseCase struct {
	tickets   ticket.Repository
	guard     *common.Guard
	txMgr     db.TransactionManager
	recorder  common.ActivityRecorder
	sanitizer sanitize.Sanitizer
	clock     biztime.Clock
	calendar  biztime.Calendar
	logger    logger.Interface
}

func NewAddTimeEntryUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	sanitizer sanitize.Sanitizer,
	clock biztime.Clock,
	calendar biztime.Calendar,
	logger logger.Interface,
) *AddTimeEntryUseCase {
	return &AddTimeEntryUseCase{
		tickets:   tickets,
		guard:     guard,
		txMgr:     txMgr,
		recorder:  recorder,
		sanitizer: sanitizer,
		clock:     clock,
		calendar:  calendar,
		logger:    logger,
	}
}

// Execute logs work on a ticket; hoursWorked is re-derived from every entry.
func (uc *AddTimeEntryUseCase) Execute(ctx context.Context, cmd AddTimeEntryCommand) (*AddTimeEntryResult, error) {
	uc.logger.Infow("executing add time entry use case", "ticket_id", cmd.TicketID, "hours", cmd.Hours)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid add time entry command", "error", err)
		return nil, err
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceTimeEntry, access.ActionAdd)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	date := uc.calendar.StartOfDayUTC(now)
	if strings.TrimSpace(cmd.Date) != "" {
		date, err = uc.calendar.ParseDate(cmd.Date)
		if err != nil {
			return nil, errors.NewValidationError("date must be YYYY-MM-DD", err.Error())
		}
	}
	description := uc.sanitizer.Text(cmd.Description)

	var result *AddTimeEntryResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}

		entry, err := ticket.NewTimeEntry(id.NewTimeEntryID(), t.ID(), actor.ID(), cmd.Hours, description, date)
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := t.AddTimeEntry(entry, now); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}

		activityDescription := fmt.Sprintf("Logged %gh on %s", cmd.Hours, t.ID())
		if err := uc.recorder.Record(txCtx, activity.TypeTicketUpdated, activityDescription, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = &AddTimeEntryResult{TimeEntryID: entry.ID(), HoursWorked: t.HoursWorked(), UpdatedAt: t.UpdatedAt()}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("add time entry failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("time entry added successfully",
		"time_entry_id", result.TimeEntryID,
		"ticket_id", cmd.TicketID,
		"hours_worked", result.HoursWorked,
	)
	return result, nil
}
