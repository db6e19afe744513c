// Package portaltest builds a Store seeded with two organizations and one
// user per role, driven by a clock tests can move.
package portaltest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thinkartha/smileybox/internal/application/portal"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/user"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/infrastructure/auth"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

var Epoch = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

// IDs of the seeded rows.
const (
	OrgAcme    = "org-acme"
	OrgGlobex  = "org-globex"
	AdminID    = "user-admin"
	LeadID     = "user-lead"
	StaffID    = "user-staff"
	ClientID   = "user-client"
	OtherID    = "user-globex"
	ClientMail = "cleo@acme.test"
)

type Fixture struct {
	Store  *portal.Store
	Tables *memory.Tables

	mu  sync.Mutex
	now time.Time
}

// New seeds the tables and builds a store with a 75/h rate. Nobody is
// signed in.
func New(t testing.TB) *Fixture {
	t.Helper()

	f := &Fixture{Tables: memory.NewTables(), now: Epoch}
	f.seed(t)

	settings := portal.DefaultSettings()
	store, err := portal.NewStore(f.Tables, settings,
		portal.WithClock(f.Clock),
		portal.WithLogger(logger.NewNopLogger()),
		portal.WithPasswordHasher(auth.NewBcryptPasswordHasher(bcrypt.MinCost)),
	)
	require.NoError(t, err)
	f.Store = store
	return f
}

func (f *Fixture) seed(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	orgs := memory.NewOrganizationRepository(f.Tables)
	users := memory.NewUserRepository(f.Tables)

	for _, o := range []struct {
		id, name, email string
		plan            organization.Plan
	}{
		{OrgAcme, "Acme Corp", "ops@acme.test", organization.PlanProfessional},
		{OrgGlobex, "Globex", "it@globex.test", organization.PlanStarter},
	} {
		org, err := organization.NewOrganization(o.id, o.name, o.plan, o.email, Epoch)
		require.NoError(t, err)
		require.NoError(t, orgs.Create(ctx, org))
	}

	for _, u := range []struct {
		id, name, email string
		role            uservo.Role
		org             string
	}{
		{AdminID, "Ada Admin", "ada@smileybox.test", uservo.RoleAdmin, ""},
		{LeadID, "Lee Lead", "lee@smileybox.test", uservo.RoleSupportLead, ""},
		{StaffID, "Sam Staff", "sam@smileybox.test", uservo.RoleSupportStaff, ""},
		{ClientID, "Cleo Client", ClientMail, uservo.RoleClient, OrgAcme},
		{OtherID, "Gil Globex", "gil@globex.test", uservo.RoleClient, OrgGlobex},
	} {
		var orgID *string
		if u.org != "" {
			org := u.org
			orgID = &org
		}
		created, err := user.NewUser(u.id, u.name, u.email, u.role, orgID, Epoch)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, created))
	}
}

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

// As signs userID in.
func (f *Fixture) As(t testing.TB, userID string) *portal.Store {
	t.Helper()
	_, err := f.Store.Login(context.Background(), userID)
	require.NoError(t, err)
	return f.Store
}
