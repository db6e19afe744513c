package dto

import (
	"time"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type ActivityDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	TicketID    string    `json:"ticket_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToActivityDTO(a *activity.Activity) *ActivityDTO {
	if a == nil {
		return nil
	}
	return &ActivityDTO{
		ID:          a.ID(),
		Type:        a.Type().String(),
		Description: a.Description(),
		UserID:      a.UserID(),
		TicketID:    a.TicketID(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToActivityDTOList(activities []*activity.Activity) []*ActivityDTO {
	return mapper.MapSlice(activities, ToActivityDTO)
}
