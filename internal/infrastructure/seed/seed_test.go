package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

type mockPasswordHasher struct {
	HashFunc func(password string) (string, error)
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordHasher) IsHash(s string) bool {
	return strings.HasPrefix(s, "hashed:")
}

const validSeed = `
settings:
  rate_per_hour: 90
organizations:
  - id: org-acme
    name: Acme Corp
    plan: professional
    contact_email: ops@acme.test
    created_at: 2026-01-05T09:00:00Z
users:
  - id: user-lead
    name: Lee Lead
    email: Lee@SmileyBox.test
    role: support-lead
    password: hashed:already
    created_at: 2026-01-05T09:00:00Z
  - id: user-client
    name: cleo client
    email: cleo@acme.test
    role: client
    organization_id: org-acme
    avatar: ZZ
    password: secret-pass
    created_at: 2026-01-06T09:00:00Z
tickets:
  - id: TKT-003
    organization_id: org-acme
    title: Printer on fire
    description: It is on fire
    status: resolved
    priority: critical
    category: bug
    created_by: user-client
    assigned_to: user-lead
    hours_worked: 99
    created_at: 2026-02-01T10:00:00Z
    updated_at: 2026-02-03T10:00:00Z
    messages:
      - id: msg-1
        user_id: user-lead
        content: Extinguisher deployed
        created_at: 2026-02-01T11:00:00Z
    time_entries:
      - id: te-1
        user_id: user-lead
        hours: 1.5
        description: Triage
        date: 2026-02-01T00:00:00Z
      - id: te-2
        user_id: user-lead
        hours: 2
        description: Replace fuser
        date: 2026-02-02T00:00:00Z
    conversion_request:
      proposed_type: feature
      reason: Add a smoke sensor
      proposed_by: user-lead
      created_at: 2026-02-02T12:00:00Z
      internal_approval: approved
      client_approval: pending
invoices:
  - id: INV-2026-004
    organization_id: org-acme
    month: 1
    year: 2026
    tickets_closed: 2
    total_hours: 4
    rate_per_hour: 80
    total_amount: 320
    status: sent
    created_at: 2026-02-01T00:00:00Z
activities:
  - id: act-1
    type: ticket-created
    description: Ticket TKT-003 created
    user_id: user-client
    ticket_id: TKT-003
    created_at: 2026-02-01T10:00:00Z
  - id: act-2
    type: ticket-resolved
    description: Ticket TKT-003 resolved
    user_id: user-lead
    ticket_id: TKT-003
    created_at: 2026-02-03T10:00:00Z
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestLoader(hasher *mockPasswordHasher) *Loader {
	clock := func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return NewLoader(hasher, clock, logger.NewNopLogger())
}

func TestLoader_LoadFile(t *testing.T) {
	ctx := context.Background()
	tables := memory.NewTables()

	doc, err := newTestLoader(&mockPasswordHasher{}).LoadFile(ctx, writeSeed(t, validSeed), tables)
	require.NoError(t, err)
	assert.Equal(t, 90.0, doc.Settings.RatePerHour)
	assert.Equal(t, memory.Counts{Organizations: 1, Users: 2, Tickets: 1, Invoices: 1, Activities: 2}, tables.Counts())

	users := memory.NewUserRepository(tables)
	lead, err := users.GetByID(ctx, "user-lead")
	require.NoError(t, err)
	assert.Equal(t, "lee@smileybox.test", lead.Email())
	assert.Equal(t, "hashed:already", lead.PasswordHash())
	assert.Equal(t, "LL", lead.Avatar())

	client, err := users.GetByID(ctx, "user-client")
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret-pass", client.PasswordHash())
	assert.Equal(t, "CC", client.Avatar(), "stale avatar is re-derived")

	tickets := memory.NewTicketRepository(tables)
	tk, err := tickets.GetByID(ctx, "TKT-003")
	require.NoError(t, err)
	assert.Equal(t, 3.5, tk.HoursWorked(), "hours come from time entries")
	require.NotNil(t, tk.ConversionRequest())
	assert.Equal(t, "approved", tk.ConversionRequest().InternalApproval().String())

	next, err := tickets.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TKT-004", next)

	nextInvoice, err := memory.NewInvoiceRepository(tables).NextID(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-005", nextInvoice)
}

func TestLoader_Load_CollectsViolations(t *testing.T) {
	ctx := context.Background()
	doc := &Document{
		Organizations: []OrganizationRecord{
			{ID: "org-acme", Name: "Acme", Plan: "starter", ContactEmail: "ops@acme.test"},
			{ID: "org-bad", Name: "Bad", Plan: "platinum", ContactEmail: "x@bad.test"},
		},
		Users: []UserRecord{
			{ID: "user-staff", Name: "Sam", Email: "sam@smileybox.test", Role: "support-staff"},
			{ID: "user-orphan", Name: "Orphan", Email: "o@nowhere.test", Role: "client", OrganizationID: "org-missing"},
			{ID: "user-dup", Name: "Dup", Email: "SAM@smileybox.test", Role: "admin"},
		},
		Tickets: []TicketRecord{
			{
				ID: "TKT-001", OrganizationID: "org-acme", Title: "Ghost", Description: "Nobody made this",
				Status: "open", Priority: "low", Category: "support", CreatedBy: "user-ghost",
			},
			{
				ID: "TKT-002", OrganizationID: "org-acme", Title: "Fine", Description: "Valid ticket",
				Status: "open", Priority: "low", Category: "support", CreatedBy: "user-staff",
				TimeEntries: []TimeEntryRecord{{ID: "te-1", UserID: "user-staff", Hours: 0, Description: "nothing"}},
			},
		},
		Invoices: []InvoiceRecord{
			{ID: "INV-2026-001", OrganizationID: "org-acme", Month: 1, Year: 2026, RatePerHour: 75, Status: "void"},
		},
		Activities: []ActivityRecord{
			{ID: "act-1", Type: "ticket-exploded", UserID: "user-staff"},
		},
	}

	tables := memory.NewTables()
	err := newTestLoader(&mockPasswordHasher{}).Load(ctx, doc, tables)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	var rejected []string
	for _, v := range verr.Violations {
		rejected = append(rejected, v.Kind+":"+v.ID)
	}
	assert.Equal(t, []string{
		"organization:org-bad",
		"user:user-orphan",
		"user:user-dup",
		"ticket:TKT-001",
		"ticket:TKT-002",
		"invoice:INV-2026-001",
		"activity:act-1",
	}, rejected)
	assert.Equal(t, memory.Counts{Organizations: 1, Users: 1}, tables.Counts())
}

func TestLoader_Load_OrdersActivitiesByTime(t *testing.T) {
	ctx := context.Background()
	at := func(day int) time.Time { return time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC) }
	doc := &Document{
		Activities: []ActivityRecord{
			{ID: "act-late", Type: "ticket-resolved", Description: "Resolved", UserID: "user-lead", CreatedAt: at(3)},
			{ID: "act-early", Type: "ticket-created", Description: "Created", UserID: "user-client", CreatedAt: at(1)},
			{ID: "act-mid", Type: "message-added", Description: "Message", UserID: "user-lead", CreatedAt: at(2)},
		},
	}

	tables := memory.NewTables()
	require.NoError(t, newTestLoader(&mockPasswordHasher{}).Load(ctx, doc, tables))

	feed, err := memory.NewActivityRepository(tables).List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, a := range feed {
		ids = append(ids, a.ID())
	}
	assert.Equal(t, []string{"act-late", "act-mid", "act-early"}, ids, "feed reads newest first")
}

func TestLoader_HashFailure(t *testing.T) {
	hasher := &mockPasswordHasher{HashFunc: func(string) (string, error) {
		return "", errors.New("entropy exhausted")
	}}
	doc := &Document{
		Users: []UserRecord{{ID: "user-admin", Name: "Ada", Email: "ada@smileybox.test", Role: "admin", Password: "plain-pass"}},
	}

	tables := memory.NewTables()
	err := newTestLoader(hasher).Load(context.Background(), doc, tables)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0].Err.Error(), "entropy exhausted")
	assert.Equal(t, 0, tables.Counts().Users)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	hashCalls := 0
	hasher := &mockPasswordHasher{HashFunc: func(pw string) (string, error) {
		hashCalls++
		return "hashed:" + pw, nil
	}}
	loader := newTestLoader(hasher)

	source := memory.NewTables()
	_, err := loader.LoadFile(ctx, writeSeed(t, validSeed), source)
	require.NoError(t, err)
	require.Equal(t, 1, hashCalls)

	doc, err := Snapshot(ctx, source, 90)
	require.NoError(t, err)
	assert.Equal(t, 3.5, doc.Tickets[0].HoursWorked)
	assert.Equal(t, "act-1", doc.Activities[0].ID, "activities are written oldest first")

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, WriteFile(path, doc))

	restored := memory.NewTables()
	reread, err := loader.LoadFile(ctx, path, restored)
	require.NoError(t, err)
	assert.Equal(t, 1, hashCalls, "stored hashes are not hashed again")
	assert.Equal(t, source.Counts(), restored.Counts())
	assert.Equal(t, doc, reread)
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadFile(writeSeed(t, "organizations: [unclosed"))
	assert.Error(t, err)
}
