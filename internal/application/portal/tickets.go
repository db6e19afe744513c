package portal

import (
	"context"

	conversiondto "github.com/thinkartha/smileybox/internal/application/conversion/dto"
	conversionusecases "github.com/thinkartha/smileybox/internal/application/conversion/usecases"
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
	ticketusecases "github.com/thinkartha/smileybox/internal/application/ticket/usecases"
)

// Ticket operations. Each one stamps the current user as the actor and
// ignores any ActorID the caller set.

func (s *Store) CreateTicket(ctx context.Context, cmd ticketusecases.CreateTicketCommand) (*ticketusecases.CreateTicketResult, error) {
	cmd.ActorID = s.actorID()
	return s.createTicketUC.Execute(ctx, cmd)
}

func (s *Store) UpdateStatus(ctx context.Context, ticketID, status string) (*ticketusecases.ChangeStatusResult, error) {
	return s.changeStatusUC.Execute(ctx, ticketusecases.ChangeStatusCommand{
		ActorID:   s.actorID(),
		TicketID:  ticketID,
		NewStatus: status,
	})
}

func (s *Store) UpdatePriority(ctx context.Context, ticketID, priority string) (*ticketusecases.ChangePriorityResult, error) {
	return s.changePriorityUC.Execute(ctx, ticketusecases.ChangePriorityCommand{
		ActorID:  s.actorID(),
		TicketID: ticketID,
		Priority: priority,
	})
}

// AssignTicket sets the assignee; nil unassigns.
func (s *Store) AssignTicket(ctx context.Context, ticketID string, assigneeID *string) (*ticketusecases.AssignTicketResult, error) {
	return s.assignTicketUC.Execute(ctx, ticketusecases.AssignTicketCommand{
		ActorID:    s.actorID(),
		TicketID:   ticketID,
		AssigneeID: assigneeID,
	})
}

func (s *Store) AddMessage(ctx context.Context, ticketID, content string, isInternal bool) (*ticketusecases.AddMessageResult, error) {
	return s.addMessageUC.Execute(ctx, ticketusecases.AddMessageCommand{
		ActorID:    s.actorID(),
		TicketID:   ticketID,
		Content:    content,
		IsInternal: isInternal,
	})
}

func (s *Store) AddTimeEntry(ctx context.Context, cmd ticketusecases.AddTimeEntryCommand) (*ticketusecases.AddTimeEntryResult, error) {
	cmd.ActorID = s.actorID()
	return s.addTimeEntryUC.Execute(ctx, cmd)
}

func (s *Store) GetTicket(ctx context.Context, ticketID string) (*ticketdto.TicketDTO, error) {
	return s.getTicketUC.Execute(ctx, ticketusecases.GetTicketQuery{ActorID: s.actorID(), TicketID: ticketID})
}

// GetTicketRendered also renders message markdown to HTML.
func (s *Store) GetTicketRendered(ctx context.Context, ticketID string) (*ticketdto.TicketDTO, error) {
	return s.getTicketUC.Execute(ctx, ticketusecases.GetTicketQuery{ActorID: s.actorID(), TicketID: ticketID, RenderMarkdown: true})
}

func (s *Store) ListTickets(ctx context.Context, query ticketusecases.ListTicketsQuery) ([]ticketdto.TicketListItemDTO, error) {
	query.ActorID = s.actorID()
	return s.listTicketsUC.Execute(ctx, query)
}

func (s *Store) RequestConversion(ctx context.Context, ticketID, proposedType, reason string) (*ticketdto.ConversionRequestDTO, error) {
	return s.requestConversionUC.Execute(ctx, conversionusecases.RequestConversionCommand{
		ActorID:      s.actorID(),
		TicketID:     ticketID,
		ProposedType: proposedType,
		Reason:       reason,
	})
}

func (s *Store) UpdateApproval(ctx context.Context, ticketID, track, decision string) (*conversionusecases.UpdateApprovalResult, error) {
	return s.updateApprovalUC.Execute(ctx, conversionusecases.UpdateApprovalCommand{
		ActorID:  s.actorID(),
		TicketID: ticketID,
		Track:    track,
		Decision: decision,
	})
}

func (s *Store) ListConversionRequests(ctx context.Context, pendingOnly bool) ([]*conversiondto.ApprovalItemDTO, error) {
	return s.listConversionsUC.Execute(ctx, conversionusecases.ListConversionRequestsQuery{
		ActorID:     s.actorID(),
		PendingOnly: pendingOnly,
	})
}
