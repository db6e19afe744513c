package usecases

import (
	"context"

	activitydto "github.com/thinkartha/smileybox/internal/application/activity/dto"
	activityusecases "github.com/thinkartha/smileybox/internal/application/activity/usecases"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/dashboard/dto"
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	ticketvo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// ActivityLister supplies the filtered activity feed.
type ActivityLister interface {
	Execute(ctx context.Context, query activityusecases.ListActivitiesQuery) ([]*activitydto.ActivityDTO, error)
}

type GetDashboardUseCase struct {
	tickets          ticket.Repository
	organizations    organization.Repository
	invoices         invoice.Repository
	activities       ActivityLister
	guard            *common.Guard
	recentActivities int
	recentTickets    int
	logger           logger.Interface
}

func NewGetDashboardUseCase(
	tickets ticket.Repository,
	organizations organization.Repository,
	invoices invoice.Repository,
	activities ActivityLister,
	guard *common.Guard,
	recentActivities, recentTickets int,
	logger logger.Interface,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		tickets:          tickets,
		organizations:    organizations,
		invoices:         invoices,
		activities:       activities,
		guard:            guard,
		recentActivities: recentActivities,
		recentTickets:    recentTickets,
		logger:           logger,
	}
}

// Stats computes the counters alone.
func (uc *GetDashboardUseCase) Stats(ctx context.Context, actorID string) (*dto.StatsDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	tickets, err := uc.visibleTickets(ctx, actor)
	if err != nil {
		return nil, err
	}
	return uc.stats(ctx, actor, tickets)
}

// Execute returns the counters with the newest tickets and activities.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, actorID string) (*dto.DashboardDTO, error) {
	uc.logger.Debugw("executing get dashboard use case", "actor_id", actorID)

	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.visibleTickets(ctx, actor)
	if err != nil {
		return nil, err
	}
	stats, err := uc.stats(ctx, actor, tickets)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activities.Execute(ctx, activityusecases.ListActivitiesQuery{
		ActorID: actor.ID(),
		Limit:   uc.recentActivities,
	})
	if err != nil {
		return nil, err
	}

	recent := tickets
	if uc.recentTickets > 0 && len(recent) > uc.recentTickets {
		recent = recent[:uc.recentTickets]
	}

	return &dto.DashboardDTO{
		Stats:            *stats,
		RecentTickets:    ticketdto.ToTicketListItemDTOs(recent),
		RecentActivities: activities,
	}, nil
}

func (uc *GetDashboardUseCase) visibleTickets(ctx context.Context, actor *user.User) ([]*ticket.Ticket, error) {
	tickets, err := uc.tickets.List(ctx, ticket.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, common.ToAppError(err)
	}
	return access.VisibleTickets(actor, tickets), nil
}

func (uc *GetDashboardUseCase) stats(ctx context.Context, actor *user.User, tickets []*ticket.Ticket) (*dto.StatsDTO, error) {
	stats := &dto.StatsDTO{}
	ownTrack := access.OwnTrack(actor.Role())

	for _, t := range tickets {
		status := t.Status()
		switch {
		case status.IsActive():
			stats.OpenTickets++
		case status.IsDone():
			stats.ResolvedTickets++
		}
		if t.Priority().IsCritical() && !status.IsDone() {
			stats.CriticalTickets++
		}
		if t.IsAssignedTo(actor.ID()) {
			stats.MyTickets++
		}
		if status == ticketvo.StatusAwaitingClient {
			stats.AwaitingClient++
		}
		stats.TotalHours += t.HoursWorked()
		if request := t.ConversionRequest(); request != nil && request.Approval(ownTrack).IsPending() {
			stats.PendingApprovals++
		}
	}

	orgs, err := uc.organizations.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list organizations", "error", err)
		return nil, common.ToAppError(err)
	}
	stats.Organizations = len(access.VisibleOrganizations(actor, orgs))

	invoices, err := uc.invoices.List(ctx, "")
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "error", err)
		return nil, common.ToAppError(err)
	}
	for _, inv := range access.VisibleInvoices(actor, invoices) {
		if inv.IsPaid() {
			stats.TotalRevenue += inv.TotalAmount()
		}
	}

	return stats, nil
}
