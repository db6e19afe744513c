package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/shared/id"
)

var _ invoice.Repository = (*InvoiceRepository)(nil)

type InvoiceRepository struct {
	tables *Tables
}

func NewInvoiceRepository(tables *Tables) *InvoiceRepository {
	return &InvoiceRepository{tables: tables}
}

func (r *InvoiceRepository) NextID(ctx context.Context, year int) (string, error) {
	var next string
	err := r.tables.write(func(s *state) error {
		s.invoiceSeq[year]++
		next = id.FormatInvoiceID(year, s.invoiceSeq[year])
		return nil
	})
	return next, err
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.invoices.get(inv.ID()); exists {
			return fmt.Errorf("invoice %s already exists", inv.ID())
		}
		if year, n, ok := id.InvoiceSequence(inv.ID()); ok && n > s.invoiceSeq[year] {
			s.invoiceSeq[year] = n
		}
		s.invoices.put(inv.ID(), inv.Clone())
		return nil
	})
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.invoices.get(inv.ID()); !exists {
			return invoice.ErrInvoiceNotFound
		}
		s.invoices.put(inv.ID(), inv.Clone())
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	var found *invoice.Invoice
	r.tables.read(func(s *state) {
		if inv, ok := s.invoices.get(invoiceID); ok {
			found = inv.Clone()
		}
	})
	if found == nil {
		return nil, invoice.ErrInvoiceNotFound
	}
	return found, nil
}

func (r *InvoiceRepository) List(ctx context.Context, organizationID string) ([]*invoice.Invoice, error) {
	out := []*invoice.Invoice{}
	r.tables.read(func(s *state) {
		rows := s.invoices.values()
		for i := len(rows) - 1; i >= 0; i-- {
			if organizationID == "" || rows[i].OrganizationID() == organizationID {
				out = append(out, rows[i].Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *InvoiceRepository) DeleteByOrganization(ctx context.Context, organizationID string) (int, error) {
	removed := 0
	err := r.tables.write(func(s *state) error {
		for _, inv := range s.invoices.values() {
			if inv.OrganizationID() == organizationID {
				s.invoices.remove(inv.ID())
				removed++
			}
		}
		return nil
	})
	return removed, err
}
