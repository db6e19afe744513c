package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/thinkartha/smileybox/internal/shared/config"
)

type Config struct {
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Billing   sharedConfig.BillingConfig   `mapstructure:"billing"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Seed      sharedConfig.SeedConfig      `mapstructure:"seed"`
	Activity  sharedConfig.ActivityConfig  `mapstructure:"activity"`
	Dashboard sharedConfig.DashboardConfig `mapstructure:"dashboard"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables. An empty path
// searches ./configs, ../configs and ../../configs for config.yaml; a missing
// file is not an error, defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("SMILEYBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func (c *Config) validate() error {
	if c.Billing.DefaultRatePerHour <= 0 {
		return fmt.Errorf("billing.default_rate_per_hour must be positive, got %v", c.Billing.DefaultRatePerHour)
	}
	if c.Activity.FeedLimit <= 0 {
		return fmt.Errorf("activity.feed_limit must be positive, got %d", c.Activity.FeedLimit)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	// Billing defaults
	v.SetDefault("billing.default_rate_per_hour", 75.0)
	v.SetDefault("billing.timezone", "UTC")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)

	// Seed defaults
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.path", "configs/seed.yaml")

	v.SetDefault("activity.feed_limit", 50)
	v.SetDefault("dashboard.recent_activities", 8)
	v.SetDefault("dashboard.recent_tickets", 5)
}
