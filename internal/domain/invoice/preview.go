package invoice

// BillableWork is the part of a ticket billing needs.
type BillableWork interface {
	IsBillable() bool
	HoursWorked() float64
}

// Preview is a computed, unsaved invoice.
type Preview struct {
	OrganizationID string
	Month          int
	Year           int
	TicketsClosed  int
	TotalHours     float64
	RatePerHour    float64
	TotalAmount    float64
}

// NewPreview totals every billable item of an organization. Month and year
// label the invoice but do not narrow which tickets are counted: all
// resolved and closed work is included.
func NewPreview(organizationID string, month, year int, ratePerHour float64, work []BillableWork) (Preview, error) {
	if organizationID == "" {
		return Preview{}, ErrOrganizationRequired
	}
	if err := validatePeriod(month, year); err != nil {
		return Preview{}, err
	}
	if ratePerHour <= 0 {
		return Preview{}, ErrInvalidRate
	}

	p := Preview{
		OrganizationID: organizationID,
		Month:          month,
		Year:           year,
		RatePerHour:    ratePerHour,
	}
	for _, w := range work {
		if !w.IsBillable() {
			continue
		}
		p.TicketsClosed++
		p.TotalHours += w.HoursWorked()
	}
	p.TotalAmount = p.TotalHours * ratePerHour
	return p, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 1 {
		return ErrInvalidPeriod
	}
	return nil
}
