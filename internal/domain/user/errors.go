package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailExists             = errors.New("email already in use")
	ErrInvalidRole             = errors.New("invalid role")
	ErrOrganizationRequired    = errors.New("client users must belong to an organization")
	ErrOrganizationNotAllowed  = errors.New("internal users cannot belong to an organization")
	ErrCannotDeleteCurrentUser = errors.New("cannot delete the signed-in user")
)
