package seed

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
)

// Snapshot copies every row of tables into a Document that Load accepts.
// Tickets, invoices and activities are written oldest first.
func Snapshot(ctx context.Context, tables *memory.Tables, ratePerHour float64) (*Document, error) {
	doc := &Document{Settings: SettingsRecord{RatePerHour: ratePerHour}}

	orgs, err := memory.NewOrganizationRepository(tables).List(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orgs {
		doc.Organizations = append(doc.Organizations, OrganizationRecord{
			ID:           o.ID(),
			Name:         o.Name(),
			Plan:         o.Plan().String(),
			ContactEmail: o.ContactEmail(),
			CreatedAt:    o.CreatedAt(),
		})
	}

	users, err := memory.NewUserRepository(tables).List(ctx, user.ListFilter{})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		doc.Users = append(doc.Users, UserRecord{
			ID:             u.ID(),
			Name:           u.Name(),
			Email:          u.Email(),
			Role:           u.Role().String(),
			OrganizationID: u.OrganizationID(),
			Avatar:         u.Avatar(),
			Password:       u.PasswordHash(),
			CreatedAt:      u.CreatedAt(),
		})
	}

	tickets, err := memory.NewTicketRepository(tables).List(ctx, ticket.Filter{})
	if err != nil {
		return nil, err
	}
	slices.Reverse(tickets)
	for _, t := range tickets {
		doc.Tickets = append(doc.Tickets, ticketRecord(t))
	}

	invoices, err := memory.NewInvoiceRepository(tables).List(ctx, "")
	if err != nil {
		return nil, err
	}
	slices.Reverse(invoices)
	for _, inv := range invoices {
		doc.Invoices = append(doc.Invoices, InvoiceRecord{
			ID:             inv.ID(),
			OrganizationID: inv.OrganizationID(),
			Month:          inv.Month(),
			Year:           inv.Year(),
			TicketsClosed:  inv.TicketsClosed(),
			TotalHours:     inv.TotalHours(),
			RatePerHour:    inv.RatePerHour(),
			TotalAmount:    inv.TotalAmount(),
			Status:         inv.Status().String(),
			CreatedAt:      inv.CreatedAt(),
		})
	}

	activities, err := memory.NewActivityRepository(tables).List(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(activities)
	for _, a := range activities {
		doc.Activities = append(doc.Activities, ActivityRecord{
			ID:          a.ID(),
			Type:        a.Type().String(),
			Description: a.Description(),
			UserID:      a.UserID(),
			TicketID:    a.TicketID(),
			CreatedAt:   a.CreatedAt(),
		})
	}

	return doc, nil
}

func ticketRecord(t *ticket.Ticket) TicketRecord {
	rec := TicketRecord{
		ID:             t.ID(),
		OrganizationID: t.OrganizationID(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		Priority:       t.Priority().String(),
		Category:       t.Category().String(),
		CreatedBy:      t.CreatedBy(),
		HoursWorked:    t.HoursWorked(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
	if a := t.AssignedTo(); a != nil {
		rec.AssignedTo = *a
	}
	for _, m := range t.Messages() {
		rec.Messages = append(rec.Messages, MessageRecord{
			ID:         m.ID(),
			UserID:     m.UserID(),
			Content:    m.Content(),
			IsInternal: m.IsInternal(),
			CreatedAt:  m.CreatedAt(),
		})
	}
	for _, e := range t.TimeEntries() {
		rec.TimeEntries = append(rec.TimeEntries, TimeEntryRecord{
			ID:          e.ID(),
			UserID:      e.UserID(),
			Hours:       e.Hours(),
			Description: e.Description(),
			Date:        e.Date(),
		})
	}
	if c := t.ConversionRequest(); c != nil {
		rec.ConversionRequest = &ConversionRecord{
			ProposedType:     c.ProposedType().String(),
			Reason:           c.Reason(),
			ProposedBy:       c.ProposedBy(),
			CreatedAt:        c.CreatedAt(),
			InternalApproval: c.InternalApproval().String(),
			ClientApproval:   c.ClientApproval().String(),
		}
	}
	return rec
}

// WriteFile saves doc as YAML.
func WriteFile(path string, doc *Document) error {
	content, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
