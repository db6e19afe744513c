package usecases

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

func TestAddTimeEntryUseCase_Execute_SumsHours(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)

	entries := []struct {
		hours float64
		date  string
		total float64
	}{
		{1.5, "2026-03-09", 1.5},
		{0.25, "", 1.75},
		{2, "2026-03-10", 3.75},
	}
	for _, e := range entries {
		result, err := uc.time.Execute(context.Background(), AddTimeEntryCommand{
			ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: e.hours, Description: "Investigation", Date: e.date,
		})
		require.NoError(t, err)
		assert.InDelta(t, e.total, result.HoursWorked, 1e-9)
	}

	stored := f.Ticket(t, tk.ID())
	assert.InDelta(t, 3.75, stored.HoursWorked(), 1e-9)
	require.Len(t, stored.TimeEntries(), 3)
	assert.Equal(t, "2026-03-09", f.Calendar.FormatDate(stored.TimeEntries()[0].Date()))
	assert.Equal(t, "2026-03-10", f.Calendar.FormatDate(stored.TimeEntries()[1].Date()), "empty date means today")

	feed := f.Feed(t)
	require.Len(t, feed, 3)
	assert.Equal(t, activity.TypeTicketUpdated, feed[0].Type())
	assert.Equal(t, "Logged 2h on TKT-001", feed[0].Description())
}

func TestAddTimeEntryUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Printer", f.Client)
	f.Advance(time.Hour)

	tests := []struct {
		name      string
		command   AddTimeEntryCommand
		errorType apperrors.ErrorType
		message   string
	}{
		{"zero hours", AddTimeEntryCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: 0, Description: "x"}, apperrors.ErrorTypeValidation, "hours must be greater than 0"},
		{"negative hours", AddTimeEntryCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: -1, Description: "x"}, apperrors.ErrorTypeValidation, "hours must be greater than 0"},
		{"infinite hours", AddTimeEntryCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: math.Inf(1), Description: "x"}, apperrors.ErrorTypeValidation, "hours must be greater than 0"},
		{"missing description", AddTimeEntryCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: 1}, apperrors.ErrorTypeValidation, "description is required"},
		{"bad date", AddTimeEntryCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), Hours: 1, Description: "x", Date: "10/03/2026"}, apperrors.ErrorTypeValidation, ""},
		{"client cannot log time", AddTimeEntryCommand{ActorID: f.Client.ID(), TicketID: tk.ID(), Hours: 1, Description: "x"}, apperrors.ErrorTypeForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.time.Execute(context.Background(), tt.command)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.errorType, appErr.Type)
			if tt.message != "" {
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}

	stored := f.Ticket(t, tk.ID())
	assert.Zero(t, stored.HoursWorked())
	assert.Empty(t, stored.TimeEntries())
	assert.Equal(t, tk.UpdatedAt(), stored.UpdatedAt())
}
