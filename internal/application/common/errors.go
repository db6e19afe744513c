// Package common holds pieces shared by every use case package: acting-user
// resolution, permission checks and translation of domain errors.
package common

import (
	"errors"

	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

var notFound = []error{
	ticket.ErrTicketNotFound,
	ticket.ErrNoConversion,
	user.ErrUserNotFound,
	organization.ErrOrganizationNotFound,
	invoice.ErrInvoiceNotFound,
}

var conflicts = []error{
	ticket.ErrConversionExists,
	user.ErrEmailExists,
}

var invalidTransitions = []error{
	ticket.ErrTrackDecided,
	invoice.ErrInvalidStatusTransition,
}

// ToAppError maps domain sentinels onto the typed application errors.
// AppErrors pass through; anything unrecognised is internal.
func ToAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	switch {
	case isAny(err, notFound):
		return apperrors.NewNotFoundError(err.Error())
	case isAny(err, conflicts):
		return apperrors.NewConflictError(err.Error())
	case isAny(err, invalidTransitions):
		return apperrors.NewInvalidTransitionError(err.Error())
	default:
		return apperrors.NewInternalError("unexpected error", err.Error())
	}
}

// ToValidationError reports a rejected domain constructor or mutation.
// Known sentinels keep their own type.
func ToValidationError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	if isAny(err, notFound) || isAny(err, conflicts) || isAny(err, invalidTransitions) {
		return ToAppError(err)
	}
	return apperrors.NewValidationError(err.Error())
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
