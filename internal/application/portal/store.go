// Package portal wires every use case around one set of entity tables and
// one signed-in user. A Store is the handle callers hold instead of
// package-level state: it owns the current user, the hourly rate, the
// clock and the business calendar.
package portal

import (
	"fmt"

	appactivity "github.com/thinkartha/smileybox/internal/application/activity"
	activityusecases "github.com/thinkartha/smileybox/internal/application/activity/usecases"
	billingusecases "github.com/thinkartha/smileybox/internal/application/billing/usecases"
	"github.com/thinkartha/smileybox/internal/application/common"
	conversionusecases "github.com/thinkartha/smileybox/internal/application/conversion/usecases"
	dashboardusecases "github.com/thinkartha/smileybox/internal/application/dashboard/usecases"
	organizationusecases "github.com/thinkartha/smileybox/internal/application/organization/usecases"
	"github.com/thinkartha/smileybox/internal/application/setting"
	ticketusecases "github.com/thinkartha/smileybox/internal/application/ticket/usecases"
	userusecases "github.com/thinkartha/smileybox/internal/application/user/usecases"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/infrastructure/auth"
	"github.com/thinkartha/smileybox/internal/infrastructure/config"
	"github.com/thinkartha/smileybox/internal/infrastructure/permission"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/services/markdown"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
)

// Settings are the tunables a Store is built with.
type Settings struct {
	DefaultRatePerHour float64
	FeedLimit          int
	RecentActivities   int
	RecentTickets      int
	BcryptCost         int
}

func DefaultSettings() Settings {
	return Settings{
		DefaultRatePerHour: 75,
		FeedLimit:          50,
		RecentActivities:   8,
		RecentTickets:      5,
		BcryptCost:         12,
	}
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		DefaultRatePerHour: cfg.Billing.DefaultRatePerHour,
		FeedLimit:          cfg.Activity.FeedLimit,
		RecentActivities:   cfg.Dashboard.RecentActivities,
		RecentTickets:      cfg.Dashboard.RecentTickets,
		BcryptCost:         cfg.Auth.Password.BcryptCost,
	}
}

type Option func(*options)

type options struct {
	clock    biztime.Clock
	calendar biztime.Calendar
	logger   logger.Interface
	hasher   user.PasswordHasher
}

// WithClock replaces the system clock, mostly for tests.
func WithClock(clock biztime.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithCalendar sets the business timezone used for entry dates and the
// default invoice month. The default is UTC.
func WithCalendar(calendar biztime.Calendar) Option {
	return func(o *options) { o.calendar = calendar }
}

func WithLogger(log logger.Interface) Option {
	return func(o *options) { o.logger = log }
}

// WithPasswordHasher replaces bcrypt.
func WithPasswordHasher(hasher user.PasswordHasher) Option {
	return func(o *options) { o.hasher = hasher }
}

// Store is the portal's single entry point. Every operation acts as the
// signed-in user; without one it fails with an unauthorized error.
type Store struct {
	tables   *memory.Tables
	session  *session
	logger   logger.Interface
	hasher   user.PasswordHasher
	calendar biztime.Calendar
	enforcer *permission.Enforcer

	organizations *memory.OrganizationRepository
	users         *memory.UserRepository

	createTicketUC   *ticketusecases.CreateTicketUseCase
	changeStatusUC   *ticketusecases.ChangeStatusUseCase
	changePriorityUC *ticketusecases.ChangePriorityUseCase
	assignTicketUC   *ticketusecases.AssignTicketUseCase
	addMessageUC     *ticketusecases.AddMessageUseCase
	addTimeEntryUC   *ticketusecases.AddTimeEntryUseCase
	getTicketUC      *ticketusecases.GetTicketUseCase
	listTicketsUC    *ticketusecases.ListTicketsUseCase

	requestConversionUC *conversionusecases.RequestConversionUseCase
	updateApprovalUC    *conversionusecases.UpdateApprovalUseCase
	listConversionsUC   *conversionusecases.ListConversionRequestsUseCase

	previewInvoiceUC      *billingusecases.PreviewInvoiceUseCase
	createInvoiceUC       *billingusecases.CreateInvoiceUseCase
	updateInvoiceStatusUC *billingusecases.UpdateInvoiceStatusUseCase
	listInvoicesUC        *billingusecases.ListInvoicesUseCase

	createOrganizationUC *organizationusecases.CreateOrganizationUseCase
	updateOrganizationUC *organizationusecases.UpdateOrganizationUseCase
	deleteOrganizationUC *organizationusecases.DeleteOrganizationUseCase
	listOrganizationsUC  *organizationusecases.ListOrganizationsUseCase

	createUserUC *userusecases.CreateUserUseCase
	updateUserUC *userusecases.UpdateUserUseCase
	deleteUserUC *userusecases.DeleteUserUseCase
	getUserUC    *userusecases.GetUserUseCase

	listActivitiesUC *activityusecases.ListActivitiesUseCase
	dashboardUC      *dashboardusecases.GetDashboardUseCase
	settings         *setting.ServiceDDD
}

// NewStore builds a store over tables, which may be empty or seeded.
func NewStore(tables *memory.Tables, settings Settings, opts ...Option) (*Store, error) {
	o := options{clock: biztime.SystemClock(), calendar: biztime.UTCCalendar()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewLogger()
	}
	if o.hasher == nil {
		o.hasher = auth.NewBcryptPasswordHasher(settings.BcryptCost)
	}
	log := o.logger.Named("portal")

	enforcer, err := permission.NewEnforcer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission enforcer: %w", err)
	}

	organizations := memory.NewOrganizationRepository(tables)
	users := memory.NewUserRepository(tables)
	tickets := memory.NewTicketRepository(tables)
	invoices := memory.NewInvoiceRepository(tables)
	activities := memory.NewActivityRepository(tables)

	guard := common.NewGuard(users, enforcer, log)
	recorder := appactivity.NewRecorder(activities, o.clock, log)
	sanitizer := sanitize.NewStrictSanitizer()
	settingService := setting.NewServiceDDD(settings.DefaultRatePerHour, guard, log)
	rates := settingService.GetSettingProvider()
	listActivities := activityusecases.NewListActivitiesUseCase(activities, tickets, guard, settings.FeedLimit, log)

	return &Store{
		tables:        tables,
		session:       &session{},
		logger:        log,
		hasher:        o.hasher,
		calendar:      o.calendar,
		enforcer:      enforcer,
		organizations: organizations,
		users:         users,

		createTicketUC:   ticketusecases.NewCreateTicketUseCase(tickets, organizations, guard, tables, recorder, sanitizer, o.clock, log),
		changeStatusUC:   ticketusecases.NewChangeStatusUseCase(tickets, guard, tables, recorder, o.clock, log),
		changePriorityUC: ticketusecases.NewChangePriorityUseCase(tickets, guard, tables, recorder, o.clock, log),
		assignTicketUC:   ticketusecases.NewAssignTicketUseCase(tickets, users, guard, tables, recorder, o.clock, log),
		addMessageUC:     ticketusecases.NewAddMessageUseCase(tickets, guard, tables, recorder, sanitizer, o.clock, log),
		addTimeEntryUC:   ticketusecases.NewAddTimeEntryUseCase(tickets, guard, tables, recorder, sanitizer, o.clock, o.calendar, log),
		getTicketUC:      ticketusecases.NewGetTicketUseCase(tickets, guard, markdown.NewRenderer(), o.calendar, log),
		listTicketsUC:    ticketusecases.NewListTicketsUseCase(tickets, guard, log),

		requestConversionUC: conversionusecases.NewRequestConversionUseCase(tickets, guard, tables, recorder, sanitizer, o.clock, log),
		updateApprovalUC:    conversionusecases.NewUpdateApprovalUseCase(tickets, guard, tables, recorder, o.clock, log),
		listConversionsUC:   conversionusecases.NewListConversionRequestsUseCase(tickets, guard, log),

		previewInvoiceUC:      billingusecases.NewPreviewInvoiceUseCase(tickets, organizations, rates, guard, o.clock, o.calendar, log),
		createInvoiceUC:       billingusecases.NewCreateInvoiceUseCase(invoices, tickets, organizations, rates, guard, tables, o.clock, o.calendar, log),
		updateInvoiceStatusUC: billingusecases.NewUpdateInvoiceStatusUseCase(invoices, guard, tables, log),
		listInvoicesUC:        billingusecases.NewListInvoicesUseCase(invoices, guard, log),

		createOrganizationUC: organizationusecases.NewCreateOrganizationUseCase(organizations, guard, tables, o.clock, log),
		updateOrganizationUC: organizationusecases.NewUpdateOrganizationUseCase(organizations, guard, tables, log),
		deleteOrganizationUC: organizationusecases.NewDeleteOrganizationUseCase(organizations, users, tickets, invoices, guard, tables, log),
		listOrganizationsUC:  organizationusecases.NewListOrganizationsUseCase(organizations, guard, log),

		createUserUC: userusecases.NewCreateUserUseCase(users, organizations, o.hasher, guard, tables, o.clock, log),
		updateUserUC: userusecases.NewUpdateUserUseCase(users, organizations, tickets, guard, tables, o.clock, log),
		deleteUserUC: userusecases.NewDeleteUserUseCase(users, tickets, guard, tables, o.clock, log),
		getUserUC:    userusecases.NewGetUserUseCase(users, guard, log),

		listActivitiesUC: listActivities,
		dashboardUC: dashboardusecases.NewGetDashboardUseCase(
			tickets, organizations, invoices, listActivities, guard,
			settings.RecentActivities, settings.RecentTickets, log,
		),
		settings: settingService,
	}, nil
}

// Tables exposes the underlying tables for snapshotting.
func (s *Store) Tables() *memory.Tables {
	return s.tables
}

// Calendar is the business calendar dates are shown in.
func (s *Store) Calendar() biztime.Calendar {
	return s.calendar
}

// PasswordHasher is the hasher user creation uses; seed loading shares it.
func (s *Store) PasswordHasher() user.PasswordHasher {
	return s.hasher
}
