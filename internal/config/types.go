package config

import "time"

// Defaults applied before any file, environment or flag overrides.
const (
	DefaultBaseURL     = "http://localhost:3001/api"
	DefaultTimeout     = 15 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultDisplayMode = "summary"
	DefaultSortOrder   = "newest"
)

// Config is the resolved client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
}

// APIConfig locates the record store and evaluation service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,http_url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=1s,lte=5m"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// DisplayConfig holds the initial dashboard view.
type DisplayConfig struct {
	Mode string `yaml:"mode" validate:"oneof=summary full"`
	Sort string `yaml:"sort" validate:"oneof=newest score innovation feasibility"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Display: DisplayConfig{Mode: DefaultDisplayMode, Sort: DefaultSortOrder},
	}
}
