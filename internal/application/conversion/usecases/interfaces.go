package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/conversion/dto"
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
)

type RequestConversionExecutor interface {
	Execute(ctx context.Context, cmd RequestConversionCommand) (*ticketdto.ConversionRequestDTO, error)
}

type UpdateApprovalExecutor interface {
	Execute(ctx context.Context, cmd UpdateApprovalCommand) (*UpdateApprovalResult, error)
}

type ListConversionRequestsExecutor interface {
	Execute(ctx context.Context, query ListConversionRequestsQuery) ([]*dto.ApprovalItemDTO, error)
}
