package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

func TestChangeStatusUseCase_Execute_AnyToAny(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)

	sequence := []vo.TicketStatus{
		vo.StatusClosed,
		vo.StatusOpen,
		vo.StatusAwaitingClient,
		vo.StatusInProgress,
		vo.StatusResolved,
		vo.StatusOpen,
	}
	for _, status := range sequence {
		f.Advance(time.Minute)
		result, err := uc.status.Execute(context.Background(), ChangeStatusCommand{
			ActorID:   f.Staff.ID(),
			TicketID:  tk.ID(),
			NewStatus: status.String(),
		})
		require.NoError(t, err, status)
		assert.Equal(t, status.String(), result.NewStatus)
		assert.Equal(t, f.Clock(), result.UpdatedAt)

		stored := f.Ticket(t, tk.ID())
		assert.Equal(t, status, stored.Status())
		assert.Equal(t, f.Clock(), stored.UpdatedAt())
	}
}

func TestChangeStatusUseCase_Execute_ResolvedRecordsTwoActivities(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)

	_, err := uc.status.Execute(context.Background(), ChangeStatusCommand{
		ActorID: f.Lead.ID(), TicketID: tk.ID(), NewStatus: "resolved",
	})
	require.NoError(t, err)

	feed := f.Feed(t)
	require.Len(t, feed, 2)
	assert.Equal(t, activity.TypeTicketResolved, feed[0].Type())
	assert.Equal(t, activity.TypeTicketUpdated, feed[1].Type())
	assert.Equal(t, "Ticket TKT-001 status changed to resolved", feed[1].Description())

	_, err = uc.status.Execute(context.Background(), ChangeStatusCommand{
		ActorID: f.Lead.ID(), TicketID: tk.ID(), NewStatus: "closed",
	})
	require.NoError(t, err)
	assert.Len(t, f.Feed(t), 3, "closing records only ticket-updated")
}

func TestChangeStatusUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)

	tests := []struct {
		name      string
		command   ChangeStatusCommand
		errorType apperrors.ErrorType
	}{
		{"client cannot change status", ChangeStatusCommand{ActorID: f.Client.ID(), TicketID: tk.ID(), NewStatus: "closed"}, apperrors.ErrorTypeForbidden},
		{"unknown status", ChangeStatusCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), NewStatus: "done"}, apperrors.ErrorTypeValidation},
		{"unknown ticket", ChangeStatusCommand{ActorID: f.Staff.ID(), TicketID: "TKT-404", NewStatus: "closed"}, apperrors.ErrorTypeNotFound},
		{"missing ticket id", ChangeStatusCommand{ActorID: f.Staff.ID(), NewStatus: "closed"}, apperrors.ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.status.Execute(context.Background(), tt.command)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, apperrors.GetAppError(err).Type)
		})
	}

	stored := f.Ticket(t, tk.ID())
	assert.Equal(t, vo.StatusOpen, stored.Status())
	assert.Equal(t, tk.UpdatedAt(), stored.UpdatedAt())
	assert.Empty(t, f.Feed(t))
}

func TestChangePriorityUseCase_Execute(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)
	f.Advance(time.Hour)

	result, err := uc.priority.Execute(context.Background(), ChangePriorityCommand{
		ActorID: f.Staff.ID(), TicketID: tk.ID(), Priority: "critical",
	})
	require.NoError(t, err)
	assert.Equal(t, "critical", result.Priority)

	stored := f.Ticket(t, tk.ID())
	assert.Equal(t, vo.PriorityCritical, stored.Priority())
	assert.Equal(t, f.Clock(), stored.UpdatedAt())

	feed := f.Feed(t)
	require.Len(t, feed, 1)
	assert.Equal(t, activity.TypeTicketUpdated, feed[0].Type())

	_, err = uc.priority.Execute(context.Background(), ChangePriorityCommand{
		ActorID: f.Client.ID(), TicketID: tk.ID(), Priority: "low",
	})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.priority.Execute(context.Background(), ChangePriorityCommand{
		ActorID: f.Staff.ID(), TicketID: tk.ID(), Priority: "blocker",
	})
	assert.True(t, apperrors.IsValidationError(err))
}
