package usecases

import (
	"testing"

	"github.com/thinkartha/smileybox/internal/application/common/commontest"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
)

type useCases struct {
	request *RequestConversionUseCase
	approve *UpdateApprovalUseCase
	list    *ListConversionRequestsUseCase
}

func setup(t *testing.T) (*commontest.Fixture, *useCases) {
	t.Helper()
	f := commontest.New(t)
	return f, &useCases{
		request: NewRequestConversionUseCase(f.Tickets, f.Guard, f.Tables, f.Recorder, sanitize.NewStrictSanitizer(), f.Clock, f.Logger),
		approve: NewUpdateApprovalUseCase(f.Tickets, f.Guard, f.Tables, f.Recorder, f.Clock, f.Logger),
		list:    NewListConversionRequestsUseCase(f.Tickets, f.Guard, f.Logger),
	}
}
