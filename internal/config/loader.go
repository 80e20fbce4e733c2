// Package config resolves client settings from defaults, a YAML file, a
// .env file, the environment and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

// Environment variables consulted after the config file.
const (
	EnvAPIURL     = "IDEAVAULT_API_URL"
	EnvAPITimeout = "IDEAVAULT_API_TIMEOUT"
	EnvLogLevel   = "IDEAVAULT_LOG_LEVEL"
	EnvLogFormat  = "IDEAVAULT_LOG_FORMAT"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Overrides carries values from command-line flags. Empty fields are ignored.
type Overrides struct {
	BaseURL   string
	LogLevel  string
	LogFormat string
}

// LoadOptions controls where Load looks for its inputs.
type LoadOptions struct {
	// Path is the YAML file. When empty, DefaultPath is tried and may be absent.
	Path string
	// EnvFile is the dotenv file. When empty, ".env" in the working directory
	// is tried and may be absent.
	EnvFile string
	// Getenv reads the environment; os.Getenv when nil.
	Getenv    func(string) string
	Overrides Overrides
}

// DefaultDir returns ~/.ideavault.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ideavault"), nil
}

// DefaultPath returns ~/.ideavault/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load resolves the configuration. Later sources win: defaults, YAML file,
// dotenv file, environment, overrides. The result is validated.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := mergeFile(&cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	env, err := dotenv(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(env[key])
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	applyOverrides(&cfg, opts.Overrides)

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile decodes YAML over cfg. A missing file is only an error when the
// caller asked for it explicitly.
func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return apperrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

// dotenv reads a dotenv file without touching the process environment.
func dotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := lookup(EnvAPITimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewValidationError("api.timeout", fmt.Sprintf("%s is not a duration: %q", EnvAPITimeout, v), err)
		}
		cfg.API.Timeout = timeout
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := lookup(EnvLogFormat); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	return nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.BaseURL != "" {
		cfg.API.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(o.LogLevel)
	}
	if o.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(o.LogFormat)
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
