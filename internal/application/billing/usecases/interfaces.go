package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/billing/dto"
)

// RateProvider supplies the current default hourly rate.
type RateProvider interface {
	RatePerHour() float64
}

type PreviewInvoiceExecutor interface {
	Execute(ctx context.Context, query PreviewInvoiceQuery) (*dto.InvoicePreviewDTO, error)
}

type CreateInvoiceExecutor interface {
	Execute(ctx context.Context, cmd CreateInvoiceCommand) (*dto.InvoiceDTO, error)
}

type UpdateInvoiceStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateInvoiceStatusCommand) (*dto.InvoiceDTO, error)
}

type ListInvoicesExecutor interface {
	Execute(ctx context.Context, query ListInvoicesQuery) ([]*dto.InvoiceDTO, error)
}
