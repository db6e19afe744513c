package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

func TestRequestConversionUseCase_Execute(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Bulk export", f.Client)

	got, err := uc.request.Execute(context.Background(), RequestConversionCommand{
		ActorID: f.Staff.ID(), TicketID: tk.ID(), ProposedType: "feature", Reason: "Needs a new export pipeline",
	})
	require.NoError(t, err)
	assert.Equal(t, "feature", got.ProposedType)
	assert.Equal(t, "pending", got.InternalApproval)
	assert.Equal(t, "pending", got.ClientApproval)
	assert.Equal(t, f.Staff.ID(), got.ProposedBy)
	assert.False(t, got.FullyApproved)

	stored := f.Ticket(t, tk.ID()).ConversionRequest()
	require.NotNil(t, stored)
	assert.Equal(t, vo.ConversionFeature, stored.ProposedType())

	feed := f.Feed(t)
	require.Len(t, feed, 1)
	assert.Equal(t, activity.TypeConversionRequested, feed[0].Type())
	assert.Equal(t, "Conversion requested: TKT-001 to feature", feed[0].Description())
}

func TestRequestConversionUseCase_Execute_SecondRequestConflicts(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Bulk export", f.Client)

	_, err := uc.request.Execute(context.Background(), RequestConversionCommand{
		ActorID: f.Staff.ID(), TicketID: tk.ID(), ProposedType: "feature", Reason: "first",
	})
	require.NoError(t, err)

	_, err = uc.request.Execute(context.Background(), RequestConversionCommand{
		ActorID: f.Lead.ID(), TicketID: tk.ID(), ProposedType: "enhancement", Reason: "second",
	})
	assert.True(t, apperrors.IsConflictError(err))

	stored := f.Ticket(t, tk.ID()).ConversionRequest()
	assert.Equal(t, vo.ConversionFeature, stored.ProposedType())
	assert.Equal(t, "first", stored.Reason())
	assert.Len(t, f.Feed(t), 1)
}

func TestRequestConversionUseCase_Execute_Rejected(t *testing.T) {
	f, uc := setup(t)
	tk := f.AddTicket(t, f.Acme.ID(), "Bulk export", f.Client)

	tests := []struct {
		name      string
		command   RequestConversionCommand
		errorType apperrors.ErrorType
	}{
		{"client cannot request", RequestConversionCommand{ActorID: f.Client.ID(), TicketID: tk.ID(), ProposedType: "feature", Reason: "r"}, apperrors.ErrorTypeForbidden},
		{"bad type", RequestConversionCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), ProposedType: "bug", Reason: "r"}, apperrors.ErrorTypeValidation},
		{"missing reason", RequestConversionCommand{ActorID: f.Staff.ID(), TicketID: tk.ID(), ProposedType: "feature"}, apperrors.ErrorTypeValidation},
		{"unknown ticket", RequestConversionCommand{ActorID: f.Staff.ID(), TicketID: "TKT-404", ProposedType: "feature", Reason: "r"}, apperrors.ErrorTypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.request.Execute(context.Background(), tt.command)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, apperrors.GetAppError(err).Type)
		})
	}
	assert.False(t, f.Ticket(t, tk.ID()).HasConversionRequest())
}
