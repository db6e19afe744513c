package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/billing/dto"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type PreviewInvoiceQuery struct {
	ActorID        string  `json:"-"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	Month          int     `json:"month" validate:"gte=0,lte=12"`
	Year           int     `json:"year" validate:"gte=0"`
	RatePerHour    float64 `json:"rate_per_hour" validate:"gte=0"`
}

type PreviewInvoiceUseCase struct {
	calc   *calculator
	guard  *common.Guard
	logger logger.Interface
}

func NewPreviewInvoiceUseCase(
	tickets ticket.Repository,
	organizations organization.Repository,
	rates RateProvider,
	guard *common.Guard,
	clock biztime.Clock,
	calendar biztime.Calendar,
	logger logger.Interface,
) *PreviewInvoiceUseCase {
	return &PreviewInvoiceUseCase{
		calc:   &calculator{tickets: tickets, organizations: organizations, rates: rates, clock: clock, calendar: calendar},
		guard:  guard,
		logger: logger,
	}
}

// Execute totals every resolved and closed ticket of the organization. The
// month and year label the invoice; they do not narrow which tickets count.
// Nothing is stored.
func (uc *PreviewInvoiceUseCase) Execute(ctx context.Context, query PreviewInvoiceQuery) (*dto.InvoicePreviewDTO, error) {
	uc.logger.Debugw("executing preview invoice use case",
		"organization_id", query.OrganizationID,
		"month", query.Month,
		"year", query.Year,
	)

	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewOrganization(actor, query.OrganizationID) {
		return nil, errors.NewForbiddenError("organization belongs to another client", query.OrganizationID)
	}

	p, err := uc.calc.preview(ctx, period{
		OrganizationID: query.OrganizationID,
		Month:          query.Month,
		Year:           query.Year,
		RatePerHour:    query.RatePerHour,
	})
	if err != nil {
		uc.logger.Errorw("preview invoice failed", "organization_id", query.OrganizationID, "error", err)
		return nil, err
	}

	return dto.ToInvoicePreviewDTO(p), nil
}
