package config

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type BillingConfig struct {
	DefaultRatePerHour float64 `mapstructure:"default_rate_per_hour"`
	Timezone           string  `mapstructure:"timezone"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
}

type SeedConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ActivityConfig struct {
	FeedLimit int `mapstructure:"feed_limit"`
}

type DashboardConfig struct {
	RecentActivities int `mapstructure:"recent_activities"`
	RecentTickets    int `mapstructure:"recent_tickets"`
}
