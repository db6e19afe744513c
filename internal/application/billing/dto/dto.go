package dto

import (
	"time"

	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type InvoicePreviewDTO struct {
	OrganizationID string  `json:"organization_id"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TicketsClosed  int     `json:"tickets_closed"`
	TotalHours     float64 `json:"total_hours"`
	RatePerHour    float64 `json:"rate_per_hour"`
	TotalAmount    float64 `json:"total_amount"`
}

type InvoiceDTO struct {
	ID string `json:"id"`
	InvoicePreviewDTO
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToInvoicePreviewDTO(p invoice.Preview) *InvoicePreviewDTO {
	return &InvoicePreviewDTO{
		OrganizationID: p.OrganizationID,
		Month:          p.Month,
		Year:           p.Year,
		TicketsClosed:  p.TicketsClosed,
		TotalHours:     p.TotalHours,
		RatePerHour:    p.RatePerHour,
		TotalAmount:    p.TotalAmount,
	}
}

func ToInvoiceDTO(i *invoice.Invoice) *InvoiceDTO {
	if i == nil {
		return nil
	}
	return &InvoiceDTO{
		ID: i.ID(),
		InvoicePreviewDTO: InvoicePreviewDTO{
			OrganizationID: i.OrganizationID(),
			Month:          i.Month(),
			Year:           i.Year(),
			TicketsClosed:  i.TicketsClosed(),
			TotalHours:     i.TotalHours(),
			RatePerHour:    i.RatePerHour(),
			TotalAmount:    i.TotalAmount(),
		},
		Status:    i.Status().String(),
		CreatedAt: i.CreatedAt(),
	}
}

func ToInvoiceDTOList(invoices []*invoice.Invoice) []*InvoiceDTO {
	return mapper.MapSlice(invoices, ToInvoiceDTO)
}
