package portal

import (
	"context"

	activitydto "github.com/thinkartha/smileybox/internal/application/activity/dto"
	activityusecases "github.com/thinkartha/smileybox/internal/application/activity/usecases"
	billingdto "github.com/thinkartha/smileybox/internal/application/billing/dto"
	billingusecases "github.com/thinkartha/smileybox/internal/application/billing/usecases"
	dashboarddto "github.com/thinkartha/smileybox/internal/application/dashboard/dto"
	settingdto "github.com/thinkartha/smileybox/internal/application/setting/dto"
)

// PreviewInvoice computes an invoice without storing it. Zero month, year
// or rate fall back to the current business month and the store rate.
func (s *Store) PreviewInvoice(ctx context.Context, query billingusecases.PreviewInvoiceQuery) (*billingdto.InvoicePreviewDTO, error) {
	query.ActorID = s.actorID()
	return s.previewInvoiceUC.Execute(ctx, query)
}

func (s *Store) CreateInvoice(ctx context.Context, cmd billingusecases.CreateInvoiceCommand) (*billingdto.InvoiceDTO, error) {
	cmd.ActorID = s.actorID()
	return s.createInvoiceUC.Execute(ctx, cmd)
}

func (s *Store) UpdateInvoiceStatus(ctx context.Context, invoiceID, status string) (*billingdto.InvoiceDTO, error) {
	return s.updateInvoiceStatusUC.Execute(ctx, billingusecases.UpdateInvoiceStatusCommand{
		ActorID:   s.actorID(),
		InvoiceID: invoiceID,
		Status:    status,
	})
}

// ListInvoices lists visible invoices, optionally for one organization.
func (s *Store) ListInvoices(ctx context.Context, organizationID string) ([]*billingdto.InvoiceDTO, error) {
	return s.listInvoicesUC.Execute(ctx, billingusecases.ListInvoicesQuery{
		ActorID:        s.actorID(),
		OrganizationID: organizationID,
	})
}

func (s *Store) GetInvoice(ctx context.Context, invoiceID string) (*billingdto.InvoiceDTO, error) {
	return s.listInvoicesUC.GetInvoice(ctx, s.actorID(), invoiceID)
}

func (s *Store) RatePerHour(ctx context.Context) (float64, error) {
	settings, err := s.settings.GetSettings(ctx, s.actorID())
	if err != nil {
		return 0, err
	}
	return settings.RatePerHour, nil
}

// SetRatePerHour changes the rate future invoices use.
func (s *Store) SetRatePerHour(ctx context.Context, rate float64) (*settingdto.SettingsDTO, error) {
	return s.settings.SetRatePerHour(ctx, s.actorID(), rate)
}

// ListActivities returns the visible feed, most recent first. limit zero
// means the configured feed limit.
func (s *Store) ListActivities(ctx context.Context, limit int) ([]*activitydto.ActivityDTO, error) {
	return s.listActivitiesUC.Execute(ctx, activityusecases.ListActivitiesQuery{
		ActorID: s.actorID(),
		Limit:   limit,
	})
}

func (s *Store) DashboardStats(ctx context.Context) (*dashboarddto.StatsDTO, error) {
	return s.dashboardUC.Stats(ctx, s.actorID())
}

func (s *Store) Dashboard(ctx context.Context) (*dashboarddto.DashboardDTO, error) {
	return s.dashboardUC.Execute(ctx, s.actorID())
}
