package usecases

import (
	"context"
	"testing"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/common/commontest"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/shared/services/markdown"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
)

type mockRecorder struct {
	RecordFunc func(ctx context.Context, activityType activity.Type, description, userID, ticketID string) error
}

func (m *mockRecorder) Record(ctx context.Context, activityType activity.Type, description, userID, ticketID string) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, activityType, description, userID, ticketID)
	}
	return nil
}

// useCases wires every ticket use case against one fixture.
type useCases struct {
	create   *CreateTicketUseCase
	status   *ChangeStatusUseCase
	priority *ChangePriorityUseCase
	assign   *AssignTicketUseCase
	message  *AddMessageUseCase
	time     *AddTimeEntryUseCase
	get      *GetTicketUseCase
	list     *ListTicketsUseCase
}

func newUseCases(f *commontest.Fixture, recorder common.ActivityRecorder) *useCases {
	if recorder == nil {
		recorder = f.Recorder
	}
	s := sanitize.NewStrictSanitizer()
	return &useCases{
		create:   NewCreateTicketUseCase(f.Tickets, f.Organizations, f.Guard, f.Tables, recorder, s, f.Clock, f.Logger),
		status:   NewChangeStatusUseCase(f.Tickets, f.Guard, f.Tables, recorder, f.Clock, f.Logger),
		priority: NewChangePriorityUseCase(f.Tickets, f.Guard, f.Tables, recorder, f.Clock, f.Logger),
		assign:   NewAssignTicketUseCase(f.Tickets, f.Users, f.Guard, f.Tables, recorder, f.Clock, f.Logger),
		message:  NewAddMessageUseCase(f.Tickets, f.Guard, f.Tables, recorder, s, f.Clock, f.Logger),
		time:     NewAddTimeEntryUseCase(f.Tickets, f.Guard, f.Tables, recorder, s, f.Clock, f.Calendar, f.Logger),
		get:      NewGetTicketUseCase(f.Tickets, f.Guard, markdown.NewRenderer(), f.Calendar, f.Logger),
		list:     NewListTicketsUseCase(f.Tickets, f.Guard, f.Logger),
	}
}

func setup(t *testing.T) (*commontest.Fixture, *useCases) {
	t.Helper()
	f := commontest.New(t)
	return f, newUseCases(f, nil)
}

func strPtr(s string) *string {
	return &s
}
