package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/billing/dto"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type UpdateInvoiceStatusCommand struct {
	ActorID   string `json:"-"`
	InvoiceID string `json:"invoice_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

type UpdateInvoiceStatusUseCase struct {
	invoices invoice.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	logger   logger.Interface
}

func NewUpdateInvoiceStatusUseCase(
	invoices invoice.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	logger logger.Interface,
) *UpdateInvoiceStatusUseCase {
	return &UpdateInvoiceStatusUseCase{
		invoices: invoices,
		guard:    guard,
		txMgr:    txMgr,
		logger:   logger,
	}
}

// Execute moves an invoice forward: draft to sent, sent to paid.
func (uc *UpdateInvoiceStatusUseCase) Execute(ctx context.Context, cmd UpdateInvoiceStatusCommand) (*dto.InvoiceDTO, error) {
	uc.logger.Infow("executing update invoice status use case", "invoice_id", cmd.InvoiceID, "status", cmd.Status)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid update invoice status command", "error", err)
		return nil, err
	}

	next, err := invoice.NewStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceInvoice, access.ActionUpdate); err != nil {
		return nil, err
	}

	var updated *invoice.Invoice
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.invoices.GetByID(txCtx, cmd.InvoiceID)
		if err != nil {
			return common.ToAppError(err)
		}
		if err := inv.ChangeStatus(next); err != nil {
			return common.ToAppError(err)
		}
		if err := uc.invoices.Update(txCtx, inv); err != nil {
			return common.ToAppError(err)
		}
		updated = inv
		return nil
	})
	if err != nil {
		uc.logger.Errorw("update invoice status failed", "invoice_id", cmd.InvoiceID, "error", err)
		return nil, err
	}

	uc.logger.Infow("invoice status updated successfully", "invoice_id", updated.ID(), "status", updated.Status())
	return dto.ToInvoiceDTO(updated), nil
}
