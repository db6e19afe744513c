package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/billing/dto"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

type ListInvoicesQuery struct {
	ActorID string
	// OrganizationID narrows the listing; clients always get their own.
	OrganizationID string
}

type ListInvoicesUseCase struct {
	invoices invoice.Repository
	guard    *common.Guard
	logger   logger.Interface
}

func NewListInvoicesUseCase(invoices invoice.Repository, guard *common.Guard, logger logger.Interface) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoices: invoices,
		guard:    guard,
		logger:   logger,
	}
}

// Execute lists visible invoices, newest first.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, query ListInvoicesQuery) ([]*dto.InvoiceDTO, error) {
	uc.logger.Debugw("executing list invoices use case", "actor_id", query.ActorID, "organization_id", query.OrganizationID)

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	orgID := query.OrganizationID
	if actor.IsClient() {
		orgID = actor.OrganizationID()
	}

	invoices, err := uc.invoices.List(ctx, orgID)
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "error", err)
		return nil, common.ToAppError(err)
	}

	return dto.ToInvoiceDTOList(access.VisibleInvoices(actor, invoices)), nil
}

// GetInvoice returns one invoice the actor may see.
func (uc *ListInvoicesUseCase) GetInvoice(ctx context.Context, actorID, invoiceID string) (*dto.InvoiceDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, common.ToAppError(err)
	}
	if !access.CanViewOrganization(actor, inv.OrganizationID()) {
		return nil, errors.NewForbiddenError("invoice belongs to another organization", invoiceID)
	}
	return dto.ToInvoiceDTO(inv), nil
}
