package invoice

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvalidPeriod           = errors.New("invalid billing period")
	ErrInvalidRate             = errors.New("rate per hour must be greater than 0")
	ErrOrganizationRequired    = errors.New("organization is required")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

func ErrInvalidTransition(from, to Status) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
