package invoice

import (
	"context"
	"time"
)

// Invoice is a frozen billing snapshot. Its totals and rate never change
// after creation; only the status moves forward.
type Invoice struct {
	id             string
	organizationID string
	month          int
	year           int
	ticketsClosed  int
	totalHours     float64
	ratePerHour    float64
	totalAmount    float64
	status         Status
	createdAt      time.Time
}

// NewInvoice freezes a preview as a draft invoice.
func NewInvoice(id string, p Preview, now time.Time) (*Invoice, error) {
	if p.OrganizationID == "" {
		return nil, ErrOrganizationRequired
	}
	if err := validatePeriod(p.Month, p.Year); err != nil {
		return nil, err
	}
	if p.RatePerHour <= 0 {
		return nil, ErrInvalidRate
	}
	return &Invoice{
		id:             id,
		organizationID: p.OrganizationID,
		month:          p.Month,
		year:           p.Year,
		ticketsClosed:  p.TicketsClosed,
		totalHours:     p.TotalHours,
		ratePerHour:    p.RatePerHour,
		totalAmount:    p.TotalHours * p.RatePerHour,
		status:         StatusDraft,
		createdAt:      now.UTC(),
	}, nil
}

// ReconstructInvoice rebuilds a stored invoice. totalAmount is taken as
// stored; it is a snapshot.
func ReconstructInvoice(id string, p Preview, status Status, createdAt time.Time) (*Invoice, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatusTransition
	}
	if err := validatePeriod(p.Month, p.Year); err != nil {
		return nil, err
	}
	return &Invoice{
		id:             id,
		organizationID: p.OrganizationID,
		month:          p.Month,
		year:           p.Year,
		ticketsClosed:  p.TicketsClosed,
		totalHours:     p.TotalHours,
		ratePerHour:    p.RatePerHour,
		totalAmount:    p.TotalAmount,
		status:         status,
		createdAt:      createdAt,
	}, nil
}

func (i *Invoice) ID() string {
	return i.id
}

func (i *Invoice) OrganizationID() string {
	return i.organizationID
}

func (i *Invoice) Month() int {
	return i.month
}

func (i *Invoice) Year() int {
	return i.year
}

func (i *Invoice) TicketsClosed() int {
	return i.ticketsClosed
}

func (i *Invoice) TotalHours() float64 {
	return i.totalHours
}

func (i *Invoice) RatePerHour() float64 {
	return i.ratePerHour
}

func (i *Invoice) TotalAmount() float64 {
	return i.totalAmount
}

func (i *Invoice) Status() Status {
	return i.status
}

func (i *Invoice) IsPaid() bool {
	return i.status == StatusPaid
}

func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// ChangeStatus moves the invoice one step forward.
func (i *Invoice) ChangeStatus(next Status) error {
	if !next.IsValid() || !i.status.CanTransitionTo(next) {
		return ErrInvalidTransition(i.status, next)
	}
	i.status = next
	return nil
}

func (i *Invoice) Clone() *Invoice {
	cp := *i
	return &cp
}

type Repository interface {
	// NextID reserves the next INV-<year>-NNN id for the year.
	NextID(ctx context.Context, year int) (string, error)
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	// List returns invoices newest first, optionally for one organization.
	List(ctx context.Context, organizationID string) ([]*Invoice, error)
	DeleteByOrganization(ctx context.Context, organizationID string) (int, error)
}
