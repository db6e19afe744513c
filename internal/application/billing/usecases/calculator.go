package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

// period is the invoice period and rate a caller asked for. Zero fields
// fall back to the current business month and the default rate.
type period struct {
	OrganizationID string
	Month          int
	Year           int
	RatePerHour    float64
}

// calculator totals an organization's billable tickets.
type calculator struct {
	tickets       ticket.Repository
	organizations organization.Repository
	rates         RateProvider
	clock         biztime.Clock
	calendar      biztime.Calendar
}

func (c *calculator) preview(ctx context.Context, p period) (invoice.Preview, error) {
	if _, err := c.organizations.GetByID(ctx, p.OrganizationID); err != nil {
		return invoice.Preview{}, common.ToAppError(err)
	}

	month, year := p.Month, p.Year
	if month == 0 && year == 0 {
		month, year = c.calendar.CurrentMonth(c.clock())
	}
	rate := p.RatePerHour
	if rate == 0 {
		rate = c.rates.RatePerHour()
	}

	orgID := p.OrganizationID
	tickets, err := c.tickets.List(ctx, ticket.Filter{OrganizationID: &orgID})
	if err != nil {
		return invoice.Preview{}, common.ToAppError(err)
	}

	work := mapper.MapSlice(tickets, func(t *ticket.Ticket) invoice.BillableWork { return t })
	result, err := invoice.NewPreview(orgID, month, year, rate, work)
	if err != nil {
		return invoice.Preview{}, errors.NewValidationError(err.Error())
	}
	return result, nil
}
