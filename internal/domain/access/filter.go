// Package access is the single place where a role decides what a reader may
// see. Internal roles see every record; client users see only what belongs
// to their own organization.
package access

import (
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
)

// CanViewOrganization reports whether viewer may see records owned by the
// organization.
func CanViewOrganization(viewer *user.User, organizationID string) bool {
	if viewer == nil {
		return false
	}
	if viewer.IsInternal() {
		return true
	}
	return viewer.BelongsTo(organizationID)
}

func CanViewTicket(viewer *user.User, t *ticket.Ticket) bool {
	return t != nil && CanViewOrganization(viewer, t.OrganizationID())
}

func VisibleTickets(viewer *user.User, tickets []*ticket.Ticket) []*ticket.Ticket {
	return keep(tickets, func(t *ticket.Ticket) bool { return CanViewTicket(viewer, t) })
}

// VisibleMessages filters per message: client readers never receive
// internal notes.
func VisibleMessages(viewer *user.User, t *ticket.Ticket) []*ticket.Message {
	if !CanViewTicket(viewer, t) {
		return []*ticket.Message{}
	}
	messages := t.Messages()
	if viewer.IsInternal() {
		return messages
	}
	return keep(messages, func(m *ticket.Message) bool { return !m.IsInternal() })
}

func VisibleInvoices(viewer *user.User, invoices []*invoice.Invoice) []*invoice.Invoice {
	return keep(invoices, func(i *invoice.Invoice) bool { return CanViewOrganization(viewer, i.OrganizationID()) })
}

// VisibleActivities keeps a client's activities only when their ticket
// belongs to the client's organization. ticketOrgs maps ticket id to
// organization id; activities without a ticket are hidden from clients.
func VisibleActivities(viewer *user.User, activities []*activity.Activity, ticketOrgs map[string]string) []*activity.Activity {
	if viewer == nil {
		return []*activity.Activity{}
	}
	if viewer.IsInternal() {
		return keep(activities, func(*activity.Activity) bool { return true })
	}
	return keep(activities, func(a *activity.Activity) bool {
		if !a.HasTicket() {
			return false
		}
		orgID, ok := ticketOrgs[a.TicketID()]
		return ok && viewer.BelongsTo(orgID)
	})
}

func VisibleOrganizations(viewer *user.User, orgs []*organization.Organization) []*organization.Organization {
	return keep(orgs, func(o *organization.Organization) bool { return CanViewOrganization(viewer, o.ID()) })
}

// CanViewUser lets clients see their own organization's users and internal
// staff, who appear on their tickets.
func CanViewUser(viewer *user.User, u *user.User) bool {
	if viewer == nil || u == nil {
		return false
	}
	if viewer.IsInternal() || u.IsInternal() {
		return true
	}
	return u.BelongsTo(viewer.OrganizationID())
}

func VisibleUsers(viewer *user.User, users []*user.User) []*user.User {
	return keep(users, func(u *user.User) bool { return CanViewUser(viewer, u) })
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
