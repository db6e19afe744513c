package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/setting/dto"
)

type GetSettingsUseCase struct {
	provider *SettingProvider
	guard    *common.Guard
}

func NewGetSettingsUseCase(provider *SettingProvider, guard *common.Guard) *GetSettingsUseCase {
	return &GetSettingsUseCase{provider: provider, guard: guard}
}

// Execute returns the settings to any signed-in user.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, actorID string) (*dto.SettingsDTO, error) {
	if _, err := uc.guard.Actor(ctx, actorID); err != nil {
		return nil, err
	}
	return &dto.SettingsDTO{RatePerHour: uc.provider.RatePerHour()}, nil
}
