package dto

import (
	activitydto "github.com/thinkartha/smileybox/internal/application/activity/dto"
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
)

// StatsDTO holds the dashboard counters, all computed over what the reader
// may see.
type StatsDTO struct {
	OpenTickets      int     `json:"open_tickets"`
	ResolvedTickets  int     `json:"resolved_tickets"`
	CriticalTickets  int     `json:"critical_tickets"`
	MyTickets        int     `json:"my_tickets"`
	AwaitingClient   int     `json:"awaiting_client"`
	TotalHours       float64 `json:"total_hours"`
	PendingApprovals int     `json:"pending_approvals"`
	Organizations    int     `json:"organizations"`
	TotalRevenue     float64 `json:"total_revenue"`
}

type DashboardDTO struct {
	Stats            StatsDTO                      `json:"stats"`
	RecentTickets    []ticketdto.TicketListItemDTO `json:"recent_tickets"`
	RecentActivities []*activitydto.ActivityDTO    `json:"recent_activities"`
}
