package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/domain/user"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
)

var base = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func newTicket(t *testing.T, id, org string, created time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(id, org, "Title "+id, "Printer jam on floor 2", vo.PriorityMedium, vo.CategorySupport, "user-1", created)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(NewTables())

	tk := newTicket(t, "TKT-001", "org-1", base)
	require.NoError(t, repo.Create(ctx, tk))

	// mutating the caller's copy does not touch the table
	require.NoError(t, tk.ChangeStatus(vo.StatusClosed, base))
	stored, err := repo.GetByID(ctx, "TKT-001")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpen, stored.Status())

	// nor does mutating a read copy
	require.NoError(t, stored.ChangeStatus(vo.StatusResolved, base))
	again, err := repo.GetByID(ctx, "TKT-001")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpen, again.Status())

	_, err = repo.GetByID(ctx, "TKT-404")
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newTicket(t, "TKT-404", "org-1", base)), ticket.ErrTicketNotFound)
}

func TestTicketRepository_NextIDFollowsLoadedTickets(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(NewTables())

	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TKT-001", first)

	require.NoError(t, repo.Create(ctx, newTicket(t, "TKT-041", "org-1", base)))
	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TKT-042", next)
}

func TestTicketRepository_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository(NewTables())

	t1 := newTicket(t, "TKT-001", "org-1", base)
	t2 := newTicket(t, "TKT-002", "org-2", base.Add(time.Hour))
	t3 := newTicket(t, "TKT-003", "org-1", base.Add(time.Hour))
	require.NoError(t, t3.ChangePriority(vo.PriorityCritical, base))
	staff := "user-staff"
	t3.AssignTo(&staff, base)
	for _, tk := range []*ticket.Ticket{t1, t2, t3} {
		require.NoError(t, repo.Create(ctx, tk))
	}

	org1 := "org-1"
	critical := vo.PriorityCritical

	tests := []struct {
		name   string
		filter ticket.Filter
		want   []string
	}{
		{"all newest first, ties by insertion", ticket.Filter{}, []string{"TKT-003", "TKT-002", "TKT-001"}},
		{"by organization", ticket.Filter{OrganizationID: &org1}, []string{"TKT-003", "TKT-001"}},
		{"by priority", ticket.Filter{Priority: &critical}, []string{"TKT-003"}},
		{"by assignee", ticket.Filter{AssignedTo: &staff}, []string{"TKT-003"}},
		{"search id", ticket.Filter{Search: "tkt-002"}, []string{"TKT-002"}},
		{"search description", ticket.Filter{Search: "PRINTER"}, []string{"TKT-003", "TKT-002", "TKT-001"}},
		{"search miss", ticket.Filter{Search: "vpn"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := []string{}
			for _, tk := range got {
				ids = append(ids, tk.ID())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewTables())

	org := "org-1"
	client, err := user.NewUser("user-1", "Ann Client", "ann@acme.io", uservo.RoleClient, &org, base)
	require.NoError(t, err)
	staff, err := user.NewUser("user-2", "Sam Staff", "sam@help.io", uservo.RoleSupportStaff, nil, base)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, client))
	require.NoError(t, repo.Create(ctx, staff))

	dup, err := user.NewUser("user-3", "Ann Again", "ANN@acme.io", uservo.RoleAdmin, nil, base)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), user.ErrEmailExists)

	byEmail, err := repo.GetByEmail(ctx, "sam@help.io")
	require.NoError(t, err)
	assert.Equal(t, "user-2", byEmail.ID())

	onlyOrg, err := repo.List(ctx, user.ListFilter{OrganizationID: "org-1"})
	require.NoError(t, err)
	assert.Len(t, onlyOrg, 1)

	withStaff, err := repo.List(ctx, user.ListFilter{OrganizationID: "org-1", IncludeInternal: true})
	require.NoError(t, err)
	assert.Len(t, withStaff, 2)

	removed, err := repo.DeleteByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, removed)
	_, err = repo.GetByID(ctx, "user-1")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestInvoiceRepository_NextIDPerYear(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(NewTables())

	inv, err := invoice.NewInvoice("INV-2024-007", invoice.Preview{OrganizationID: "org-1", Month: 5, Year: 2024, RatePerHour: 75}, base)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inv))

	next, err := repo.NextID(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-008", next)

	next, err = repo.NextID(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-001", next)
}

func TestActivityRepository_MostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(NewTables())

	for _, id := range []string{"act-1", "act-2", "act-3"} {
		a, err := activity.NewActivity(id, activity.TypeTicketUpdated, id, "user-1", "", base)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, a))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "act-3", list[0].ID())
	assert.Equal(t, "act-1", list[2].ID())
}

func TestTables_RunInTransaction_RollsBack(t *testing.T) {
	ctx := context.Background()
	tables := NewTables()
	orgs := NewOrganizationRepository(tables)
	tickets := NewTicketRepository(tables)
	acts := NewActivityRepository(tables)

	org, err := organization.NewOrganization("org-1", "Acme", organization.PlanStarter, "a@acme.io", base)
	require.NoError(t, err)
	require.NoError(t, orgs.Create(ctx, org))
	require.NoError(t, tickets.Create(ctx, newTicket(t, "TKT-001", "org-1", base)))

	boom := errors.New("boom")
	err = tables.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := tickets.DeleteByOrganization(ctx, "org-1"); err != nil {
			return err
		}
		if err := orgs.Delete(ctx, "org-1"); err != nil {
			return err
		}
		if _, err := tickets.NextID(ctx); err != nil {
			return err
		}
		a, err := activity.NewActivity("act-1", activity.TypeTicketUpdated, "x", "user-1", "", base)
		if err != nil {
			return err
		}
		if err := acts.Append(ctx, a); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, Counts{Organizations: 1, Tickets: 1}, tables.Counts())
	next, err := tickets.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TKT-002", next, "sequence reserved inside the failed transaction is released")
}

func TestTables_RunInTransaction_CommitsAndNests(t *testing.T) {
	ctx := context.Background()
	tables := NewTables()
	tickets := NewTicketRepository(tables)

	err := tables.RunInTransaction(ctx, func(ctx context.Context) error {
		return tables.RunInTransaction(ctx, func(ctx context.Context) error {
			return tickets.Create(ctx, newTicket(t, "TKT-001", "org-1", base))
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tables.Counts().Tickets)
}

func TestTables_RunInTransaction_RestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	tables := NewTables()
	tickets := NewTicketRepository(tables)

	assert.Panics(t, func() {
		_ = tables.RunInTransaction(ctx, func(ctx context.Context) error {
			_ = tickets.Create(ctx, newTicket(t, "TKT-001", "org-1", base))
			panic("unexpected")
		})
	})
	assert.Zero(t, tables.Counts().Tickets)
}
