package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/application/common/commontest"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/id"
)

type useCases struct {
	create *CreateOrganizationUseCase
	update *UpdateOrganizationUseCase
	delete *DeleteOrganizationUseCase
	list   *ListOrganizationsUseCase
}

func setup(t *testing.T) (*commontest.Fixture, *useCases) {
	t.Helper()
	f := commontest.New(t)
	return f, &useCases{
		create: NewCreateOrganizationUseCase(f.Organizations, f.Guard, f.Tables, f.Clock, f.Logger),
		update: NewUpdateOrganizationUseCase(f.Organizations, f.Guard, f.Tables, f.Logger),
		delete: NewDeleteOrganizationUseCase(f.Organizations, f.Users, f.Tickets, f.Invoices, f.Guard, f.Tables, f.Logger),
		list:   NewListOrganizationsUseCase(f.Organizations, f.Guard, f.Logger),
	}
}

func strPtr(s string) *string { return &s }

func TestCreateOrganizationUseCase_Execute(t *testing.T) {
	f, uc := setup(t)

	got, err := uc.create.Execute(context.Background(), CreateOrganizationCommand{
		ActorID: f.Admin.ID(), Name: "Initech", ContactEmail: "Help@Initech.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Initech", got.Name)
	assert.Equal(t, organization.PlanStarter.String(), got.Plan)
	assert.Equal(t, "help@initech.test", got.ContactEmail)
	assert.Equal(t, commontest.Epoch, got.CreatedAt)

	stored, err := f.Organizations.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech", stored.Name())
	assert.Empty(t, f.Feed(t), "organization changes are not part of the feed")
}

func TestCreateOrganizationUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)

	tests := []struct {
		name      string
		cmd       CreateOrganizationCommand
		errorType apperrors.ErrorType
	}{
		{"staff", CreateOrganizationCommand{ActorID: f.Staff.ID(), Name: "X", ContactEmail: "x@x.test"}, apperrors.ErrorTypeForbidden},
		{"client", CreateOrganizationCommand{ActorID: f.Client.ID(), Name: "X", ContactEmail: "x@x.test"}, apperrors.ErrorTypeForbidden},
		{"signed out", CreateOrganizationCommand{Name: "X", ContactEmail: "x@x.test"}, apperrors.ErrorTypeUnauthorized},
		{"missing name", CreateOrganizationCommand{ActorID: f.Admin.ID(), ContactEmail: "x@x.test"}, apperrors.ErrorTypeValidation},
		{"bad email", CreateOrganizationCommand{ActorID: f.Admin.ID(), Name: "X", ContactEmail: "nope"}, apperrors.ErrorTypeValidation},
		{"unknown plan", CreateOrganizationCommand{ActorID: f.Admin.ID(), Name: "X", Plan: "platinum", ContactEmail: "x@x.test"}, apperrors.ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.create.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, apperrors.GetAppError(err).Type)
		})
	}
	assert.Equal(t, 2, f.Tables.Counts().Organizations)
}

func TestUpdateOrganizationUseCase_Execute(t *testing.T) {
	f, uc := setup(t)

	got, err := uc.update.Execute(context.Background(), UpdateOrganizationCommand{
		ActorID: f.Admin.ID(), OrganizationID: f.Acme.ID(), Plan: strPtr("enterprise"),
	})
	require.NoError(t, err)
	assert.Equal(t, "enterprise", got.Plan)
	assert.Equal(t, f.Acme.Name(), got.Name, "unset fields are kept")
	assert.Equal(t, f.Acme.ContactEmail(), got.ContactEmail)

	_, err = uc.update.Execute(context.Background(), UpdateOrganizationCommand{
		ActorID: f.Admin.ID(), OrganizationID: "org-nope", Name: strPtr("Y"),
	})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.update.Execute(context.Background(), UpdateOrganizationCommand{
		ActorID: f.Lead.ID(), OrganizationID: f.Acme.ID(), Name: strPtr("Y"),
	})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestDeleteOrganizationUseCase_Execute_Cascades(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	f.AddUser(t, "user-acme-2", "Cal Client", "cal@acme.test", uservo.RoleClient, f.Acme.ID())
	f.AddTicket(t, f.Acme.ID(), "Printer on fire", f.Client)
	f.AddTicket(t, f.Acme.ID(), "VPN down", f.Staff)
	globexTicket := f.AddTicket(t, f.Globex.ID(), "Email bounce", f.OtherClient)

	preview, err := invoice.NewPreview(f.Acme.ID(), 3, 2026, 100, nil)
	require.NoError(t, err)
	inv, err := invoice.NewInvoice(id.FormatInvoiceID(2026, 1), preview, f.Clock())
	require.NoError(t, err)
	require.NoError(t, f.Invoices.Create(ctx, inv))

	got, err := uc.delete.Execute(ctx, DeleteOrganizationCommand{ActorID: f.Admin.ID(), OrganizationID: f.Acme.ID()})
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsersDeleted)
	assert.Equal(t, 2, got.TicketsDeleted)
	assert.Equal(t, 1, got.InvoicesDeleted)

	counts := f.Tables.Counts()
	assert.Equal(t, 1, counts.Organizations)
	assert.Equal(t, 4, counts.Users, "internal staff and the other client remain")
	assert.Equal(t, 1, counts.Tickets)
	assert.Zero(t, counts.Invoices)
	assert.Equal(t, globexTicket.ID(), f.Ticket(t, globexTicket.ID()).ID())
}

func TestDeleteOrganizationUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	f.AddTicket(t, f.Acme.ID(), "Keep me", f.Client)

	_, err := uc.delete.Execute(context.Background(), DeleteOrganizationCommand{ActorID: f.Client.ID(), OrganizationID: f.Acme.ID()})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.delete.Execute(context.Background(), DeleteOrganizationCommand{ActorID: f.Admin.ID(), OrganizationID: "org-nope"})
	assert.True(t, apperrors.IsNotFoundError(err))

	assert.Equal(t, 1, f.Tables.Counts().Tickets)
	assert.Equal(t, 5, f.Tables.Counts().Users)
}

func TestListOrganizationsUseCase(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	all, err := uc.list.Execute(ctx, f.Staff.ID())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, f.Acme.ID(), all[0].ID)
	assert.Equal(t, f.Globex.ID(), all[1].ID)

	own, err := uc.list.Execute(ctx, f.Client.ID())
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.Acme.ID(), own[0].ID)

	got, err := uc.list.GetOrganization(ctx, f.Client.ID(), f.Acme.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	_, err = uc.list.GetOrganization(ctx, f.Client.ID(), f.Globex.ID())
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.list.GetOrganization(ctx, f.Admin.ID(), "org-nope")
	assert.True(t, apperrors.IsNotFoundError(err))
}
