package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	ticketvo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/domain/user"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// Violation is one record the loader refused.
type Violation struct {
	Kind string
	ID   string
	Err  error
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %q: %v", v.Kind, v.ID, v.Err)
}

// ValidationError lists every refused record of a load. The records that
// passed are still in the tables.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("seed has %d invalid record(s): %s", len(e.Violations), strings.Join(parts, "; "))
}

// Loader turns a Document into aggregates. Derived values are always
// recomputed: ticket hours from time entries, avatars from names, and
// password hashes from plain passwords.
type Loader struct {
	hasher user.PasswordHasher
	clock  func() time.Time
	logger logger.Interface
}

func NewLoader(hasher user.PasswordHasher, clock func() time.Time, logger logger.Interface) *Loader {
	if clock == nil {
		clock = time.Now
	}
	return &Loader{hasher: hasher, clock: clock, logger: logger}
}

// ReadFile parses a seed file without loading it.
func ReadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &doc, nil
}

// LoadFile reads path and loads it into tables.
func (l *Loader) LoadFile(ctx context.Context, path string, tables *memory.Tables) (*Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.logger.Infow("loading seed file", "path", path)
	return doc, l.Load(ctx, doc, tables)
}

// Load adds every record of doc to tables. Records are loaded in dependency
// order so references can be checked against rows already accepted. A
// *ValidationError is returned when any record was refused.
func (l *Loader) Load(ctx context.Context, doc *Document, tables *memory.Tables) error {
	var violations []Violation
	reject := func(kind, recordID string, err error) {
		violations = append(violations, Violation{Kind: kind, ID: recordID, Err: err})
		l.logger.Warnw("seed record rejected", "kind", kind, "id", recordID, "error", err)
	}

	orgs := memory.NewOrganizationRepository(tables)
	users := memory.NewUserRepository(tables)
	tickets := memory.NewTicketRepository(tables)
	invoices := memory.NewInvoiceRepository(tables)
	activities := memory.NewActivityRepository(tables)

	for _, rec := range doc.Organizations {
		org, err := l.organization(rec)
		if err == nil {
			err = orgs.Create(ctx, org)
		}
		if err != nil {
			reject("organization", rec.ID, err)
		}
	}

	for _, rec := range doc.Users {
		u, err := l.user(ctx, rec, orgs)
		if err == nil {
			err = users.Create(ctx, u)
		}
		if err != nil {
			reject("user", rec.ID, err)
		}
	}

	for _, rec := range doc.Tickets {
		t, err := l.ticket(ctx, rec, orgs, users)
		if err == nil {
			err = tickets.Create(ctx, t)
		}
		if err != nil {
			reject("ticket", rec.ID, err)
		}
	}

	for _, rec := range doc.Invoices {
		inv, err := l.invoice(ctx, rec, orgs)
		if err == nil {
			err = invoices.Create(ctx, inv)
		}
		if err != nil {
			reject("invoice", rec.ID, err)
		}
	}

	loaded := make([]*activity.Activity, 0, len(doc.Activities))
	for _, rec := range doc.Activities {
		a, err := l.activity(rec)
		if err != nil {
			reject("activity", rec.ID, err)
			continue
		}
		loaded = append(loaded, a)
	}
	// The feed is append order, so rows go in oldest first whatever the file order.
	slices.SortStableFunc(loaded, func(a, b *activity.Activity) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	for _, a := range loaded {
		if err := activities.Append(ctx, a); err != nil {
			reject("activity", a.ID(), err)
		}
	}

	counts := tables.Counts()
	l.logger.Infow("seed loaded",
		"organizations", counts.Organizations,
		"users", counts.Users,
		"tickets", counts.Tickets,
		"invoices", counts.Invoices,
		"activities", counts.Activities,
		"rejected", len(violations),
	)

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (l *Loader) organization(rec OrganizationRecord) (*organization.Organization, error) {
	if rec.ID == "" {
		return nil, errors.New("id is required")
	}
	plan, err := organization.NewPlan(rec.Plan)
	if err != nil {
		return nil, err
	}
	return organization.ReconstructOrganization(rec.ID, rec.Name, plan, rec.ContactEmail, l.timestamp(rec.CreatedAt))
}

func (l *Loader) user(ctx context.Context, rec UserRecord, orgs *memory.OrganizationRepository) (*user.User, error) {
	role, err := uservo.NewRole(rec.Role)
	if err != nil {
		return nil, err
	}
	name, err := uservo.NormalizeName(rec.Name)
	if err != nil {
		return nil, err
	}
	email, err := uservo.NormalizeEmail(rec.Email)
	if err != nil {
		return nil, err
	}

	var orgID *string
	if rec.OrganizationID != "" {
		if _, err := orgs.GetByID(ctx, rec.OrganizationID); err != nil {
			return nil, fmt.Errorf("organization %s: %w", rec.OrganizationID, err)
		}
		org := rec.OrganizationID
		orgID = &org
	}

	var hash *string
	if rec.Password != "" {
		h := rec.Password
		if !l.hasher.IsHash(h) {
			if h, err = l.hasher.Hash(rec.Password); err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
		}
		hash = &h
	}

	// A stored avatar is kept only while it still matches the name.
	avatar := rec.Avatar
	if avatar != uservo.Avatar(name) {
		avatar = ""
	}
	return user.ReconstructUser(rec.ID, name, email, role, orgID, avatar, hash, l.timestamp(rec.CreatedAt))
}

func (l *Loader) ticket(ctx context.Context, rec TicketRecord, orgs *memory.OrganizationRepository, users *memory.UserRepository) (*ticket.Ticket, error) {
	if _, ok := id.TicketSequence(rec.ID); !ok {
		return nil, errors.New("malformed ticket id")
	}
	if _, err := orgs.GetByID(ctx, rec.OrganizationID); err != nil {
		return nil, fmt.Errorf("organization %s: %w", rec.OrganizationID, err)
	}
	if _, err := users.GetByID(ctx, rec.CreatedBy); err != nil {
		return nil, fmt.Errorf("creator %s: %w", rec.CreatedBy, err)
	}

	status, err := ticketvo.NewTicketStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	priority, err := ticketvo.NewPriority(rec.Priority)
	if err != nil {
		return nil, err
	}
	category, err := ticketvo.NewCategory(rec.Category)
	if err != nil {
		return nil, err
	}

	var assignedTo *string
	if rec.AssignedTo != "" {
		assignee, err := users.GetByID(ctx, rec.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("assignee %s: %w", rec.AssignedTo, err)
		}
		if !assignee.IsInternal() {
			return nil, fmt.Errorf("assignee %s is not internal staff", rec.AssignedTo)
		}
		a := rec.AssignedTo
		assignedTo = &a
	}

	createdAt := l.timestamp(rec.CreatedAt)
	updatedAt := rec.UpdatedAt.UTC()
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	messages := make([]*ticket.Message, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return nil, ticket.ErrContentRequired
		}
		msgID := m.ID
		if msgID == "" {
			msgID = id.NewMessageID()
		}
		messages = append(messages, ticket.ReconstructMessage(msgID, rec.ID, m.UserID, m.Content, m.IsInternal, l.timestamp(m.CreatedAt)))
	}

	entries := make([]*ticket.TimeEntry, 0, len(rec.TimeEntries))
	for _, e := range rec.TimeEntries {
		if !ticket.ValidHours(e.Hours) {
			return nil, ticket.ErrInvalidHours
		}
		entryID := e.ID
		if entryID == "" {
			entryID = id.NewTimeEntryID()
		}
		entries = append(entries, ticket.ReconstructTimeEntry(entryID, rec.ID, e.UserID, e.Hours, e.Description, e.Date.UTC()))
	}

	var conversion *ticket.ConversionRequest
	if c := rec.ConversionRequest; c != nil {
		conversion, err = ticket.ReconstructConversionRequest(
			rec.ID,
			ticketvo.ConversionType(c.ProposedType),
			c.Reason,
			c.ProposedBy,
			l.timestamp(c.CreatedAt),
			ticketvo.ApprovalState(c.InternalApproval),
			ticketvo.ApprovalState(c.ClientApproval),
		)
		if err != nil {
			return nil, err
		}
	}

	return ticket.ReconstructTicket(ticket.ReconstructParams{
		ID:             rec.ID,
		OrganizationID: rec.OrganizationID,
		Title:          rec.Title,
		Description:    rec.Description,
		Status:         status,
		Priority:       priority,
		Category:       category,
		CreatedBy:      rec.CreatedBy,
		AssignedTo:     assignedTo,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Messages:       messages,
		TimeEntries:    entries,
		Conversion:     conversion,
	})
}

func (l *Loader) invoice(ctx context.Context, rec InvoiceRecord, orgs *memory.OrganizationRepository) (*invoice.Invoice, error) {
	if _, _, ok := id.InvoiceSequence(rec.ID); !ok {
		return nil, errors.New("malformed invoice id")
	}
	if _, err := orgs.GetByID(ctx, rec.OrganizationID); err != nil {
		return nil, fmt.Errorf("organization %s: %w", rec.OrganizationID, err)
	}
	status, err := invoice.NewStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	return invoice.ReconstructInvoice(rec.ID, invoice.Preview{
		OrganizationID: rec.OrganizationID,
		Month:          rec.Month,
		Year:           rec.Year,
		TicketsClosed:  rec.TicketsClosed,
		TotalHours:     rec.TotalHours,
		RatePerHour:    rec.RatePerHour,
		TotalAmount:    rec.TotalAmount,
	}, status, l.timestamp(rec.CreatedAt))
}

func (l *Loader) activity(rec ActivityRecord) (*activity.Activity, error) {
	activityType, err := activity.NewType(rec.Type)
	if err != nil {
		return nil, err
	}
	activityID := rec.ID
	if activityID == "" {
		activityID = id.NewActivityID()
	}
	return activity.NewActivity(activityID, activityType, rec.Description, rec.UserID, rec.TicketID, l.timestamp(rec.CreatedAt))
}

// timestamp fills a missing time with the loader clock.
func (l *Loader) timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return l.clock().UTC()
	}
	return t.UTC()
}
