// Package bootstrap prepares the configuration, logger and seeded store the
// CLI commands share.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thinkartha/smileybox/internal/application/portal"
	"github.com/thinkartha/smileybox/internal/infrastructure/auth"
	"github.com/thinkartha/smileybox/internal/infrastructure/config"
	"github.com/thinkartha/smileybox/internal/infrastructure/repository/memory"
	"github.com/thinkartha/smileybox/internal/infrastructure/seed"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// Verbose lowers the log level to debug after the configured level is
// applied. The root command binds it to --verbose.
var Verbose bool

type Env struct {
	Config   *config.Config
	Logger   logger.Interface
	Calendar biztime.Calendar
}

// Init loads configuration and sets up logging and the business timezone.
func Init(configPath string) (*Env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if Verbose {
		logger.SetLevel(slog.LevelDebug)
	}

	// Business timezone for invoice periods and entry dates
	calendar, err := biztime.NewCalendar(cfg.Billing.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Env{
		Config:   cfg,
		Logger:   logger.NewLoggerWithSlog(logger.WithComponent("cli")),
		Calendar: calendar,
	}, nil
}

// OpenStore builds a store over fresh tables, loading the configured seed
// file when seeding is enabled. A seed rate overrides the configured
// default rate. Any refused seed record fails the open.
func OpenStore(ctx context.Context, env *Env) (*portal.Store, error) {
	settings := portal.SettingsFromConfig(env.Config)
	hasher := auth.NewBcryptPasswordHasher(settings.BcryptCost)
	tables := memory.NewTables()

	if env.Config.Seed.Enabled {
		loader := seed.NewLoader(hasher, biztime.SystemClock(), env.Logger.Named("seed"))
		doc, err := loader.LoadFile(ctx, env.Config.Seed.Path, tables)
		if err != nil {
			return nil, err
		}
		if doc.Settings.RatePerHour > 0 {
			settings.DefaultRatePerHour = doc.Settings.RatePerHour
		}
	}

	return portal.NewStore(tables, settings,
		portal.WithLogger(env.Logger),
		portal.WithPasswordHasher(hasher),
		portal.WithCalendar(env.Calendar),
	)
}

// OpenStoreAs opens the store and signs in the user with the given email.
func OpenStoreAs(ctx context.Context, env *Env, email string) (*portal.Store, error) {
	if email == "" {
		return nil, fmt.Errorf("--as is required")
	}
	store, err := OpenStore(ctx, env)
	if err != nil {
		return nil, err
	}
	if _, err := store.LoginByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to sign in as %s: %w", email, err)
	}
	return store, nil
}
