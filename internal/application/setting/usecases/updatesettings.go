package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/setting/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type SetRatePerHourCommand struct {
	ActorID     string  `json:"-"`
	RatePerHour float64 `json:"rate_per_hour" validate:"gt=0"`
}

type SetRatePerHourUseCase struct {
	provider *SettingProvider
	guard    *common.Guard
	logger   logger.Interface
}

func NewSetRatePerHourUseCase(provider *SettingProvider, guard *common.Guard, logger logger.Interface) *SetRatePerHourUseCase {
	return &SetRatePerHourUseCase{
		provider: provider,
		guard:    guard,
		logger:   logger,
	}
}

func (uc *SetRatePerHourUseCase) Execute(ctx context.Context, cmd SetRatePerHourCommand) (*dto.SettingsDTO, error) {
	uc.logger.Infow("executing set rate per hour use case", "actor_id", cmd.ActorID, "rate_per_hour", cmd.RatePerHour)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid set rate per hour command", "error", err)
		return nil, err
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceSettings, access.ActionUpdate); err != nil {
		return nil, err
	}

	previous := uc.provider.setRatePerHour(cmd.RatePerHour)

	uc.logger.Infow("rate per hour updated successfully", "previous", previous, "rate_per_hour", cmd.RatePerHour)
	return &dto.SettingsDTO{RatePerHour: cmd.RatePerHour}, nil
}
