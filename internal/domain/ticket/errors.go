package ticket

import (
	"errors"
	"fmt"
)

var (
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrTitleRequired           = errors.New("title is required")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrOrganizationRequired    = errors.New("organization is required")
	ErrCreatorRequired         = errors.New("creator is required")
	ErrInvalidStatus           = errors.New("invalid ticket status")
	ErrInvalidPriority         = errors.New("invalid priority")
	ErrInvalidCategory         = errors.New("invalid category")
	ErrContentRequired         = errors.New("message content is required")
	ErrInvalidHours            = errors.New("hours must be greater than 0")
	ErrEntryDescriptionMissing = errors.New("time entry description is required")
	ErrTicketMismatch          = errors.New("entry belongs to another ticket")
	ErrConversionExists        = errors.New("ticket already has a conversion request")
	ErrNoConversion            = errors.New("ticket has no conversion request")
	ErrInvalidConversionType   = errors.New("invalid conversion type")
	ErrReasonRequired          = errors.New("conversion reason is required")
	ErrInvalidTrack            = errors.New("invalid approval track")
	ErrInvalidDecision         = errors.New("invalid approval decision")
	ErrTrackDecided            = errors.New("approval track already decided")
)

func errTrackDecided(track, state string) error {
	return fmt.Errorf("%w: %s is %s", ErrTrackDecided, track, state)
}
