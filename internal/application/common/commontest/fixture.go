// Package commontest builds a populated set of real in-memory repositories
// for use case tests: two organizations and one user per role.
package commontest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appactivity "github.com/thinkartha/smileybox/internal/application/activity"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	ticketvo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/domain/user"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/infrastructure/permission"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// Epoch is the fixture clock's starting time.
var Epoch = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type Fixture struct {
	Tables        *memory.Tables
	Organizations *memory.OrganizationRepository
	Users         *memory.UserRepository
	Tickets       *memory.TicketRepository
	Invoices      *memory.InvoiceRepository
	Activities    *memory.ActivityRepository
	Authorizer    *permission.Enforcer
	Guard         *common.Guard
	Recorder      *appactivity.Recorder
	Calendar      biztime.Calendar
	Logger        logger.Interface

	Acme   *organization.Organization
	Globex *organization.Organization

	Admin       *user.User
	Lead        *user.User
	Staff       *user.User
	Client      *user.User // belongs to Acme
	OtherClient *user.User // belongs to Globex

	mu  sync.Mutex
	now time.Time
}

func New(t testing.TB) *Fixture {
	t.Helper()

	log := logger.NewNopLogger()
	tables := memory.NewTables()
	enforcer, err := permission.NewEnforcer(log)
	require.NoError(t, err)

	f := &Fixture{
		Tables:        tables,
		Organizations: memory.NewOrganizationRepository(tables),
		Users:         memory.NewUserRepository(tables),
		Tickets:       memory.NewTicketRepository(tables),
		Invoices:      memory.NewInvoiceRepository(tables),
		Activities:    memory.NewActivityRepository(tables),
		Authorizer:    enforcer,
		Calendar:      biztime.UTCCalendar(),
		Logger:        log,
		now:           Epoch,
	}
	f.Guard = common.NewGuard(f.Users, f.Authorizer, log)
	f.Recorder = appactivity.NewRecorder(f.Activities, f.Clock, log)

	f.Acme = f.AddOrganization(t, "org-acme", "Acme Corp", organization.PlanProfessional, "ops@acme.test")
	f.Globex = f.AddOrganization(t, "org-globex", "Globex", organization.PlanStarter, "it@globex.test")

	f.Admin = f.AddUser(t, "user-admin", "Ada Admin", "ada@smileybox.test", uservo.RoleAdmin, "")
	f.Lead = f.AddUser(t, "user-lead", "Lee Lead", "lee@smileybox.test", uservo.RoleSupportLead, "")
	f.Staff = f.AddUser(t, "user-staff", "Sam Staff", "sam@smileybox.test", uservo.RoleSupportStaff, "")
	f.Client = f.AddUser(t, "user-client", "Cleo Client", "cleo@acme.test", uservo.RoleClient, f.Acme.ID())
	f.OtherClient = f.AddUser(t, "user-globex", "Gil Globex", "gil@globex.test", uservo.RoleClient, f.Globex.ID())

	return f
}

// Clock returns the fixture's current time; it only moves through Advance.
func (f *Fixture) Clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixture) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *Fixture) AddOrganization(t testing.TB, id, name string, plan organization.Plan, email string) *organization.Organization {
	t.Helper()
	o, err := organization.NewOrganization(id, name, plan, email, f.Clock())
	require.NoError(t, err)
	require.NoError(t, f.Organizations.Create(context.Background(), o))
	return o
}

func (f *Fixture) AddUser(t testing.TB, id, name, email string, role uservo.Role, orgID string) *user.User {
	t.Helper()
	var org *string
	if orgID != "" {
		org = &orgID
	}
	u, err := user.NewUser(id, name, email, role, org, f.Clock())
	require.NoError(t, err)
	require.NoError(t, f.Users.Create(context.Background(), u))
	return u
}

// AddTicket stores an open ticket directly, without recording activity.
func (f *Fixture) AddTicket(t testing.TB, orgID, title string, createdBy *user.User) *ticket.Ticket {
	t.Helper()
	ctx := context.Background()
	ticketID, err := f.Tickets.NextID(ctx)
	require.NoError(t, err)
	tk, err := ticket.NewTicket(ticketID, orgID, title, title+" details", ticketvo.PriorityMedium, ticketvo.CategorySupport, createdBy.ID(), f.Clock())
	require.NoError(t, err)
	require.NoError(t, f.Tickets.Create(ctx, tk))
	return tk
}

// Ticket reloads a ticket from the table.
func (f *Fixture) Ticket(t testing.TB, ticketID string) *ticket.Ticket {
	t.Helper()
	tk, err := f.Tickets.GetByID(context.Background(), ticketID)
	require.NoError(t, err)
	return tk
}

// Feed lists recorded activities, most recent first.
func (f *Fixture) Feed(t testing.TB) []*activity.Activity {
	t.Helper()
	acts, err := f.Activities.List(context.Background())
	require.NoError(t, err)
	return acts
}
