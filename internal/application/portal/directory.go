package portal

import (
	"context"

	organizationdto "github.com/thinkartha/smileybox/internal/application/organization/dto"
	organizationusecases "github.com/thinkartha/smileybox/internal/application/organization/usecases"
	userdto "github.com/thinkartha/smileybox/internal/application/user/dto"
	userusecases "github.com/thinkartha/smileybox/internal/application/user/usecases"
)

func (s *Store) CreateOrganization(ctx context.Context, cmd organizationusecases.CreateOrganizationCommand) (*organizationdto.OrganizationDTO, error) {
	cmd.ActorID = s.actorID()
	return s.createOrganizationUC.Execute(ctx, cmd)
}

func (s *Store) UpdateOrganization(ctx context.Context, cmd organizationusecases.UpdateOrganizationCommand) (*organizationdto.OrganizationDTO, error) {
	cmd.ActorID = s.actorID()
	return s.updateOrganizationUC.Execute(ctx, cmd)
}

// DeleteOrganization also removes the organization's users, tickets and
// invoices.
func (s *Store) DeleteOrganization(ctx context.Context, organizationID string) (*organizationusecases.DeleteOrganizationResult, error) {
	return s.deleteOrganizationUC.Execute(ctx, organizationusecases.DeleteOrganizationCommand{
		ActorID:        s.actorID(),
		OrganizationID: organizationID,
	})
}

func (s *Store) ListOrganizations(ctx context.Context) ([]*organizationdto.OrganizationDTO, error) {
	return s.listOrganizationsUC.Execute(ctx, s.actorID())
}

func (s *Store) GetOrganization(ctx context.Context, organizationID string) (*organizationdto.OrganizationDTO, error) {
	return s.listOrganizationsUC.GetOrganization(ctx, s.actorID(), organizationID)
}

func (s *Store) CreateUser(ctx context.Context, cmd userusecases.CreateUserCommand) (*userdto.UserDTO, error) {
	cmd.ActorID = s.actorID()
	return s.createUserUC.Execute(ctx, cmd)
}

func (s *Store) UpdateUser(ctx context.Context, cmd userusecases.UpdateUserCommand) (*userdto.UserDTO, error) {
	cmd.ActorID = s.actorID()
	return s.updateUserUC.Execute(ctx, cmd)
}

func (s *Store) DeleteUser(ctx context.Context, userID string) (*userusecases.DeleteUserResult, error) {
	return s.deleteUserUC.Execute(ctx, userusecases.DeleteUserCommand{ActorID: s.actorID(), UserID: userID})
}

// ListUsers lists visible users, optionally narrowed to one organization
// plus internal staff.
func (s *Store) ListUsers(ctx context.Context, organizationID string) ([]*userdto.UserDTO, error) {
	return s.getUserUC.List(ctx, userusecases.ListUsersQuery{ActorID: s.actorID(), OrganizationID: organizationID})
}

func (s *Store) GetUser(ctx context.Context, userID string) (*userdto.UserDTO, error) {
	return s.getUserUC.GetByID(ctx, s.actorID(), userID)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*userdto.UserDTO, error) {
	return s.getUserUC.GetByEmail(ctx, s.actorID(), email)
}
