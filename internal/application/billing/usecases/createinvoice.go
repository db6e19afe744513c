package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/billing/dto"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type CreateInvoiceCommand struct {
	ActorID        string `json:"-"`
	OrganizationID string `json:"organization_id" validate:"required"`
	// Month and Year default to the current business month when both are zero.
	Month int `json:"month" validate:"gte=0,lte=12"`
	Year  int `json:"year" validate:"gte=0"`
	// RatePerHour defaults to the store rate when zero.
	RatePerHour float64 `json:"rate_per_hour" validate:"gte=0"`
}

type CreateInvoiceUseCase struct {
	calc     *calculator
	invoices invoice.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreateInvoiceUseCase(
	invoices invoice.Repository,
	tickets ticket.Repository,
	organizations organization.Repository,
	rates RateProvider,
	guard *common.Guard,
	txMgr db.TransactionManager,
	clock biztime.Clock,
	calendar biztime.Calendar,
	logger logger.Interface,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		calc:     &calculator{tickets: tickets, organizations: organizations, rates: rates, clock: clock, calendar: calendar},
		invoices: invoices,
		guard:    guard,
		txMgr:    txMgr,
		clock:    clock,
		logger:   logger,
	}
}

// Execute freezes the current preview as a draft invoice. Later changes to
// tickets or the default rate never alter it.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, cmd CreateInvoiceCommand) (*dto.InvoiceDTO, error) {
	uc.logger.Infow("executing create invoice use case",
		"organization_id", cmd.OrganizationID,
		"month", cmd.Month,
		"year", cmd.Year,
	)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid create invoice command", "error", err)
		return nil, err
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceInvoice, access.ActionCreate); err != nil {
		return nil, err
	}

	var created *invoice.Invoice
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.calc.preview(txCtx, period{
			OrganizationID: cmd.OrganizationID,
			Month:          cmd.Month,
			Year:           cmd.Year,
			RatePerHour:    cmd.RatePerHour,
		})
		if err != nil {
			return err
		}

		invoiceID, err := uc.invoices.NextID(txCtx, p.Year)
		if err != nil {
			return common.ToAppError(err)
		}
		inv, err := invoice.NewInvoice(invoiceID, p, uc.clock())
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.invoices.Create(txCtx, inv); err != nil {
			return common.ToAppError(err)
		}
		created = inv
		return nil
	})
	if err != nil {
		uc.logger.Errorw("create invoice failed", "organization_id", cmd.OrganizationID, "error", err)
		return nil, err
	}

	uc.logger.Infow("invoice created successfully",
		"invoice_id", created.ID(),
		"organization_id", created.OrganizationID(),
		"total_amount", created.TotalAmount(),
	)
	return dto.ToInvoiceDTO(created), nil
}
