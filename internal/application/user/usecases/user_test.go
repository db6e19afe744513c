package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/application/common/commontest"
	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

type mockPasswordHasher struct {
	HashFunc func(password string) (string, error)
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordHasher) IsHash(s string) bool {
	return len(s) > 7 && s[:7] == "hashed:"
}

type useCases struct {
	hasher *mockPasswordHasher
	create *CreateUserUseCase
	update *UpdateUserUseCase
	delete *DeleteUserUseCase
	get    *GetUserUseCase
}

func setup(t *testing.T) (*commontest.Fixture, *useCases) {
	t.Helper()
	f := commontest.New(t)
	hasher := &mockPasswordHasher{}
	return f, &useCases{
		hasher: hasher,
		create: NewCreateUserUseCase(f.Users, f.Organizations, hasher, f.Guard, f.Tables, f.Clock, f.Logger),
		update: NewUpdateUserUseCase(f.Users, f.Organizations, f.Tickets, f.Guard, f.Tables, f.Clock, f.Logger),
		delete: NewDeleteUserUseCase(f.Users, f.Tickets, f.Guard, f.Tables, f.Clock, f.Logger),
		get:    NewGetUserUseCase(f.Users, f.Guard, f.Logger),
	}
}

func strPtr(s string) *string { return &s }

func TestCreateUserUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		cmd      func(f *commontest.Fixture) CreateUserCommand
		wantOrg  string
		wantHash bool
	}{
		{
			name: "client with password",
			cmd: func(f *commontest.Fixture) CreateUserCommand {
				return CreateUserCommand{Name: "Carl  Client", Email: "Carl@Acme.test", Role: "client", OrganizationID: f.Acme.ID(), Password: "s3cret-pass"}
			},
			wantOrg:  "org-acme",
			wantHash: true,
		},
		{
			name: "internal role drops organization",
			cmd: func(f *commontest.Fixture) CreateUserCommand {
				return CreateUserCommand{Name: "Stu Staff", Email: "stu@smileybox.test", Role: "support-staff", OrganizationID: f.Acme.ID()}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, uc := setup(t)
			cmd := tt.cmd(f)
			cmd.ActorID = f.Admin.ID()

			got, err := uc.create.Execute(context.Background(), cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrg, got.OrganizationID)
			assert.Equal(t, tt.wantHash, got.HasPassword)

			stored, err := f.Users.GetByID(context.Background(), got.ID)
			require.NoError(t, err)
			assert.Equal(t, got.Email, stored.Email())
			if tt.wantHash {
				assert.Equal(t, "hashed:s3cret-pass", stored.PasswordHash())
			}
		})
	}
}

func TestCreateUserUseCase_Execute_NormalizesInput(t *testing.T) {
	f, uc := setup(t)

	got, err := uc.create.Execute(context.Background(), CreateUserCommand{
		ActorID: f.Admin.ID(), Name: "  Mia   Berg ", Email: "Mia@Acme.TEST", Role: "client", OrganizationID: f.Acme.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mia Berg", got.Name)
	assert.Equal(t, "mia@acme.test", got.Email)
	assert.Equal(t, "MB", got.Avatar)
	assert.False(t, got.HasPassword)
}

func TestCreateUserUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)

	tests := []struct {
		name      string
		cmd       CreateUserCommand
		errorType apperrors.ErrorType
	}{
		{"lead cannot manage users", CreateUserCommand{ActorID: f.Lead.ID(), Name: "X", Email: "x@x.test", Role: "client", OrganizationID: f.Acme.ID()}, apperrors.ErrorTypeForbidden},
		{"client without organization", CreateUserCommand{ActorID: f.Admin.ID(), Name: "X", Email: "x@x.test", Role: "client"}, apperrors.ErrorTypeValidation},
		{"unknown organization", CreateUserCommand{ActorID: f.Admin.ID(), Name: "X", Email: "x@x.test", Role: "client", OrganizationID: "org-nope"}, apperrors.ErrorTypeNotFound},
		{"unknown role", CreateUserCommand{ActorID: f.Admin.ID(), Name: "X", Email: "x@x.test", Role: "owner"}, apperrors.ErrorTypeValidation},
		{"duplicate email", CreateUserCommand{ActorID: f.Admin.ID(), Name: "X", Email: "CLEO@acme.test", Role: "client", OrganizationID: f.Acme.ID()}, apperrors.ErrorTypeConflict},
		{"short password", CreateUserCommand{ActorID: f.Admin.ID(), Name: "X", Email: "x@x.test", Role: "admin", Password: "short"}, apperrors.ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.create.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, apperrors.GetAppError(err).Type)
		})
	}
	assert.Equal(t, 5, f.Tables.Counts().Users)
}

func TestCreateUserUseCase_Execute_HashFailure(t *testing.T) {
	f, uc := setup(t)
	uc.hasher.HashFunc = func(string) (string, error) { return "", errors.New("boom") }

	_, err := uc.create.Execute(context.Background(), CreateUserCommand{
		ActorID: f.Admin.ID(), Name: "X", Email: "x@x.test", Role: "admin", Password: "long-enough",
	})
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
	assert.Equal(t, 5, f.Tables.Counts().Users)
}

func TestUpdateUserUseCase_Execute(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	got, err := uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Client.ID(), Name: strPtr("Cleo Jones")})
	require.NoError(t, err)
	assert.Equal(t, "Cleo Jones", got.Name)
	assert.Equal(t, "CJ", got.Avatar)
	assert.Equal(t, f.Acme.ID(), got.OrganizationID)

	got, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Client.ID(), OrganizationID: strPtr(f.Globex.ID())})
	require.NoError(t, err)
	assert.Equal(t, f.Globex.ID(), got.OrganizationID)

	got, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Client.ID(), Role: strPtr("support-staff")})
	require.NoError(t, err)
	assert.Equal(t, vo.RoleSupportStaff.String(), got.Role)
	assert.Empty(t, got.OrganizationID, "internal roles carry no organization")

	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Staff.ID(), Role: strPtr("client")})
	assert.True(t, apperrors.IsValidationError(err), "client role needs an organization")
}

func TestUpdateUserUseCase_Execute_DemotionUnassigns(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	assigned := f.AddTicket(t, f.Acme.ID(), "Assigned", f.Client)
	assigned.AssignTo(strPtr(f.Staff.ID()), f.Clock())
	require.NoError(t, f.Tickets.Update(ctx, assigned))
	other := f.AddTicket(t, f.Acme.ID(), "Other", f.Client)
	other.AssignTo(strPtr(f.Lead.ID()), f.Clock())
	require.NoError(t, f.Tickets.Update(ctx, other))

	got, err := uc.update.Execute(ctx, UpdateUserCommand{
		ActorID: f.Admin.ID(), UserID: f.Staff.ID(), Role: strPtr("client"), OrganizationID: strPtr(f.Acme.ID()),
	})
	require.NoError(t, err)
	assert.Equal(t, vo.RoleClient.String(), got.Role)

	assert.Nil(t, f.Ticket(t, assigned.ID()).AssignedTo())
	assert.True(t, f.Ticket(t, other.ID()).IsAssignedTo(f.Lead.ID()))

	// Moving between internal roles keeps assignments.
	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Lead.ID(), Role: strPtr("support-staff")})
	require.NoError(t, err)
	assert.True(t, f.Ticket(t, other.ID()).IsAssignedTo(f.Lead.ID()))
}

func TestUpdateUserUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	_, err := uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Staff.ID(), Email: strPtr("lee@smileybox.test")})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Client.ID(), OrganizationID: strPtr("org-nope")})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: "user-nope", Name: strPtr("X")})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Client.ID(), UserID: f.Client.ID(), Name: strPtr("X")})
	assert.True(t, apperrors.IsForbiddenError(err))

	// A failed multi-field update leaves the row unchanged.
	_, err = uc.update.Execute(ctx, UpdateUserCommand{ActorID: f.Admin.ID(), UserID: f.Staff.ID(), Name: strPtr("New Name"), Role: strPtr("nope")})
	require.Error(t, err)
	stored, err := f.Users.GetByID(ctx, f.Staff.ID())
	require.NoError(t, err)
	assert.Equal(t, "Sam Staff", stored.Name())
}

func TestDeleteUserUseCase_Execute(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	assigned := f.AddTicket(t, f.Acme.ID(), "Assigned", f.Client)
	assigned.AssignTo(strPtr(f.Staff.ID()), f.Clock())
	require.NoError(t, f.Tickets.Update(ctx, assigned))
	other := f.AddTicket(t, f.Acme.ID(), "Other", f.Client)
	other.AssignTo(strPtr(f.Lead.ID()), f.Clock())
	require.NoError(t, f.Tickets.Update(ctx, other))

	got, err := uc.delete.Execute(ctx, DeleteUserCommand{ActorID: f.Admin.ID(), UserID: f.Staff.ID()})
	require.NoError(t, err)
	assert.Equal(t, []string{assigned.ID()}, got.TicketsUnassigned)

	assert.Nil(t, f.Ticket(t, assigned.ID()).AssignedTo())
	assert.True(t, f.Ticket(t, other.ID()).IsAssignedTo(f.Lead.ID()))
	assert.Equal(t, 4, f.Tables.Counts().Users)
	assert.Empty(t, f.Feed(t))
}

func TestDeleteUserUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	_, err := uc.delete.Execute(ctx, DeleteUserCommand{ActorID: f.Admin.ID(), UserID: f.Admin.ID()})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.delete.Execute(ctx, DeleteUserCommand{ActorID: f.Admin.ID(), UserID: "user-nope"})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.delete.Execute(ctx, DeleteUserCommand{ActorID: f.Staff.ID(), UserID: f.Client.ID()})
	assert.True(t, apperrors.IsForbiddenError(err))

	assert.Equal(t, 5, f.Tables.Counts().Users)
}

func TestGetUserUseCase(t *testing.T) {
	f, uc := setup(t)
	ctx := context.Background()

	all, err := uc.get.List(ctx, ListUsersQuery{ActorID: f.Staff.ID()})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	acme, err := uc.get.List(ctx, ListUsersQuery{ActorID: f.Admin.ID(), OrganizationID: f.Acme.ID()})
	require.NoError(t, err)
	assert.Len(t, acme, 4, "internal staff plus the Acme client")

	// Clients are narrowed to their organization regardless of the query.
	seen, err := uc.get.List(ctx, ListUsersQuery{ActorID: f.OtherClient.ID(), OrganizationID: f.Acme.ID()})
	require.NoError(t, err)
	ids := make([]string, 0, len(seen))
	for _, u := range seen {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{"user-admin", "user-lead", "user-staff", "user-globex"}, ids)

	got, err := uc.get.GetByEmail(ctx, f.Client.ID(), " SAM@smileybox.test ")
	require.NoError(t, err)
	assert.Equal(t, f.Staff.ID(), got.ID)

	_, err = uc.get.GetByID(ctx, f.Client.ID(), f.OtherClient.ID())
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.get.GetByEmail(ctx, f.Admin.ID(), "nobody@nowhere.test")
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.get.GetByID(ctx, "", f.Staff.ID())
	assert.True(t, apperrors.IsUnauthorizedError(err))
}
