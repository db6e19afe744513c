package dto

import (
	"time"

	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type TicketDTO struct {
	ID                string                `json:"id"`
	OrganizationID    string                `json:"organization_id"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Status            string                `json:"status"`
	Priority          string                `json:"priority"`
	Category          string                `json:"category"`
	CreatedBy         string                `json:"created_by"`
	AssignedTo        *string               `json:"assigned_to"`
	HoursWorked       float64               `json:"hours_worked"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Messages          []MessageDTO          `json:"messages"`
	TimeEntries       []TimeEntryDTO        `json:"time_entries"`
	ConversionRequest *ConversionRequestDTO `json:"conversion_request"`
}

type MessageDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
	// ContentHTML is the content rendered from markdown; empty when the
	// caller did not ask for rendering.
	ContentHTML string    `json:"content_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TimeEntryDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type ConversionRequestDTO struct {
	TicketID         string    `json:"ticket_id"`
	ProposedType     string    `json:"proposed_type"`
	Reason           string    `json:"reason"`
	ProposedBy       string    `json:"proposed_by"`
	InternalApproval string    `json:"internal_approval"`
	ClientApproval   string    `json:"client_approval"`
	FullyApproved    bool      `json:"fully_approved"`
	CreatedAt        time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Category       string    `json:"category"`
	CreatedBy      string    `json:"created_by"`
	AssignedTo     *string   `json:"assigned_to"`
	HoursWorked    float64   `json:"hours_worked"`
	HasConversion  bool      `json:"has_conversion"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToTicketDTO maps a ticket with the messages the reader may see. messages
// is passed separately because visibility is decided by the caller; cal
// decides the calendar day shown for time entries.
func ToTicketDTO(t *ticket.Ticket, messages []*ticket.Message, cal biztime.Calendar) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:                t.ID(),
		OrganizationID:    t.OrganizationID(),
		Title:             t.Title(),
		Description:       t.Description(),
		Status:            t.Status().String(),
		Priority:          t.Priority().String(),
		Category:          t.Category().String(),
		CreatedBy:         t.CreatedBy(),
		AssignedTo:        t.AssignedTo(),
		HoursWorked:       t.HoursWorked(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
		Messages:          mapper.MapSlice(messages, ToMessageDTO),
		TimeEntries:       mapper.MapSlice(t.TimeEntries(), func(e *ticket.TimeEntry) TimeEntryDTO { return ToTimeEntryDTO(e, cal) }),
		ConversionRequest: ToConversionRequestDTO(t.ConversionRequest()),
	}
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID(),
		UserID:     m.UserID(),
		Content:    m.Content(),
		IsInternal: m.IsInternal(),
		CreatedAt:  m.CreatedAt(),
	}
}

func ToTimeEntryDTO(e *ticket.TimeEntry, cal biztime.Calendar) TimeEntryDTO {
	return TimeEntryDTO{
		ID:          e.ID(),
		UserID:      e.UserID(),
		Hours:       e.Hours(),
		Description: e.Description(),
		Date:        cal.FormatDate(e.Date()),
	}
}

func ToConversionRequestDTO(c *ticket.ConversionRequest) *ConversionRequestDTO {
	if c == nil {
		return nil
	}
	return &ConversionRequestDTO{
		TicketID:         c.TicketID(),
		ProposedType:     c.ProposedType().String(),
		Reason:           c.Reason(),
		ProposedBy:       c.ProposedBy(),
		InternalApproval: c.InternalApproval().String(),
		ClientApproval:   c.ClientApproval().String(),
		FullyApproved:    c.IsFullyApproved(),
		CreatedAt:        c.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:             t.ID(),
		OrganizationID: t.OrganizationID(),
		Title:          t.Title(),
		Status:         t.Status().String(),
		Priority:       t.Priority().String(),
		Category:       t.Category().String(),
		CreatedBy:      t.CreatedBy(),
		AssignedTo:     t.AssignedTo(),
		HoursWorked:    t.HoursWorked(),
		HasConversion:  t.HasConversionRequest(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket) []TicketListItemDTO {
	return mapper.MapSlice(tickets, ToTicketListItemDTO)
}
