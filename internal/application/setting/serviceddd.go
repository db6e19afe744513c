package setting

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/setting/dto"
	"github.com/thinkartha/smileybox/internal/application/setting/usecases"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// ServiceDDD aggregates the setting use cases around one provider.
type ServiceDDD struct {
	getSettingsUC    *usecases.GetSettingsUseCase
	setRatePerHourUC *usecases.SetRatePerHourUseCase
	settingProvider  *usecases.SettingProvider
	logger           logger.Interface
}

func NewServiceDDD(defaultRatePerHour float64, guard *common.Guard, logger logger.Interface) *ServiceDDD {
	provider := usecases.NewSettingProvider(defaultRatePerHour)

	return &ServiceDDD{
		getSettingsUC:    usecases.NewGetSettingsUseCase(provider, guard),
		setRatePerHourUC: usecases.NewSetRatePerHourUseCase(provider, guard, logger),
		settingProvider:  provider,
		logger:           logger,
	}
}

func (s *ServiceDDD) GetSettings(ctx context.Context, actorID string) (*dto.SettingsDTO, error) {
	return s.getSettingsUC.Execute(ctx, actorID)
}

func (s *ServiceDDD) SetRatePerHour(ctx context.Context, actorID string, rate float64) (*dto.SettingsDTO, error) {
	return s.setRatePerHourUC.Execute(ctx, usecases.SetRatePerHourCommand{ActorID: actorID, RatePerHour: rate})
}

// GetSettingProvider exposes the live provider for billing.
func (s *ServiceDDD) GetSettingProvider() *usecases.SettingProvider {
	return s.settingProvider
}
