package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/application/common/commontest"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/id"
)

type mockRateProvider struct {
	rate float64
}

func (m *mockRateProvider) RatePerHour() float64 {
	return m.rate
}

type useCases struct {
	rates   *mockRateProvider
	preview *PreviewInvoiceUseCase
	create  *CreateInvoiceUseCase
	status  *UpdateInvoiceStatusUseCase
	list    *ListInvoicesUseCase
}

func setup(t *testing.T) (*commontest.Fixture, *useCases) {
	t.Helper()
	f := commontest.New(t)
	rates := &mockRateProvider{rate: 100}
	return f, &useCases{
		rates:   rates,
		preview: NewPreviewInvoiceUseCase(f.Tickets, f.Organizations, rates, f.Guard, f.Clock, f.Calendar, f.Logger),
		create:  NewCreateInvoiceUseCase(f.Invoices, f.Tickets, f.Organizations, rates, f.Guard, f.Tables, f.Clock, f.Calendar, f.Logger),
		status:  NewUpdateInvoiceStatusUseCase(f.Invoices, f.Guard, f.Tables, f.Logger),
		list:    NewListInvoicesUseCase(f.Invoices, f.Guard, f.Logger),
	}
}

// workedTicket stores a ticket in the given status with hours logged.
func workedTicket(t *testing.T, f *commontest.Fixture, orgID string, status vo.TicketStatus, hours ...float64) *ticket.Ticket {
	t.Helper()
	tk := f.AddTicket(t, orgID, "Work item", f.Staff)
	for _, h := range hours {
		entry, err := ticket.NewTimeEntry(id.NewTimeEntryID(), tk.ID(), f.Staff.ID(), h, "work", f.Clock())
		require.NoError(t, err)
		require.NoError(t, tk.AddTimeEntry(entry, f.Clock()))
	}
	require.NoError(t, tk.ChangeStatus(status, f.Clock()))
	require.NoError(t, f.Tickets.Update(context.Background(), tk))
	return tk
}
