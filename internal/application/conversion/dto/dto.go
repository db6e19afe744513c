package dto

import (
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
)

// ApprovalItemDTO is one row of the approvals board.
type ApprovalItemDTO struct {
	TicketID       string                          `json:"ticket_id"`
	TicketTitle    string                          `json:"ticket_title"`
	OrganizationID string                          `json:"organization_id"`
	Request        *ticketdto.ConversionRequestDTO `json:"request"`
}

func ToApprovalItemDTO(t *ticket.Ticket) *ApprovalItemDTO {
	if t == nil || !t.HasConversionRequest() {
		return nil
	}
	return &ApprovalItemDTO{
		TicketID:       t.ID(),
		TicketTitle:    t.Title(),
		OrganizationID: t.OrganizationID(),
		Request:        ticketdto.ToConversionRequestDTO(t.ConversionRequest()),
	}
}
