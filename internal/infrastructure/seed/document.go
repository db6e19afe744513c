// Package seed reads a store's initial records from a YAML file and writes
// snapshots of a running store back in the same format.
package seed

import "time"

// Document is the on-disk layout of a seed or snapshot file.
type Document struct {
	Settings      SettingsRecord       `yaml:"settings"`
	Organizations []OrganizationRecord `yaml:"organizations"`
	Users         []UserRecord         `yaml:"users"`
	Tickets       []TicketRecord       `yaml:"tickets"`
	Invoices      []InvoiceRecord      `yaml:"invoices"`
	Activities    []ActivityRecord     `yaml:"activities"`
}

type SettingsRecord struct {
	RatePerHour float64 `yaml:"rate_per_hour,omitempty"`
}

type OrganizationRecord struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Plan         string    `yaml:"plan"`
	ContactEmail string    `yaml:"contact_email"`
	CreatedAt    time.Time `yaml:"created_at"`
}

// UserRecord carries either a plain password or a bcrypt hash in Password.
// Plain values are hashed on load; snapshots only ever write hashes.
type UserRecord struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Email          string    `yaml:"email"`
	Role           string    `yaml:"role"`
	OrganizationID string    `yaml:"organization_id,omitempty"`
	Avatar         string    `yaml:"avatar,omitempty"`
	Password       string    `yaml:"password,omitempty"`
	CreatedAt      time.Time `yaml:"created_at"`
}

// TicketRecord.HoursWorked is written for readers of a snapshot and
// ignored on load.
type TicketRecord struct {
	ID                string            `yaml:"id"`
	OrganizationID    string            `yaml:"organization_id"`
	Title             string            `yaml:"title"`
	Description       string            `yaml:"description"`
	Status            string            `yaml:"status"`
	Priority          string            `yaml:"priority"`
	Category          string            `yaml:"category"`
	CreatedBy         string            `yaml:"created_by"`
	AssignedTo        string            `yaml:"assigned_to,omitempty"`
	HoursWorked       float64           `yaml:"hours_worked,omitempty"`
	CreatedAt         time.Time         `yaml:"created_at"`
	UpdatedAt         time.Time         `yaml:"updated_at"`
	Messages          []MessageRecord   `yaml:"messages,omitempty"`
	TimeEntries       []TimeEntryRecord `yaml:"time_entries,omitempty"`
	ConversionRequest *ConversionRecord `yaml:"conversion_request,omitempty"`
}

type MessageRecord struct {
	ID         string    `yaml:"id"`
	UserID     string    `yaml:"user_id"`
	Content    string    `yaml:"content"`
	IsInternal bool      `yaml:"is_internal,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
}

type TimeEntryRecord struct {
	ID          string    `yaml:"id"`
	UserID      string    `yaml:"user_id"`
	Hours       float64   `yaml:"hours"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
}

type ConversionRecord struct {
	ProposedType     string    `yaml:"proposed_type"`
	Reason           string    `yaml:"reason"`
	ProposedBy       string    `yaml:"proposed_by"`
	CreatedAt        time.Time `yaml:"created_at"`
	InternalApproval string    `yaml:"internal_approval"`
	ClientApproval   string    `yaml:"client_approval"`
}

type InvoiceRecord struct {
	ID             string    `yaml:"id"`
	OrganizationID string    `yaml:"organization_id"`
	Month          int       `yaml:"month"`
	Year           int       `yaml:"year"`
	TicketsClosed  int       `yaml:"tickets_closed"`
	TotalHours     float64   `yaml:"total_hours"`
	RatePerHour    float64   `yaml:"rate_per_hour"`
	TotalAmount    float64   `yaml:"total_amount"`
	Status         string    `yaml:"status"`
	CreatedAt      time.Time `yaml:"created_at"`
}

type ActivityRecord struct {
	ID          string    `yaml:"id"`
	Type        string    `yaml:"type"`
	Description string    `yaml:"description"`
	UserID      string    `yaml:"user_id"`
	TicketID    string    `yaml:"ticket_id,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}
