package server

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/integrations/github"
)

// Supported GitHub API backends.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// Defaults applied by DefaultConfig.
const (
	DefaultAddr    = ":8080"
	DefaultSMaxAge = 1800
)

// Config holds server configuration.
type Config struct {
	Addr       string        `toml:"addr"`
	API        string        `toml:"api"`
	Token      string        `toml:"token"`
	BaseURL    string        `toml:"base_url"`
	Timeout    time.Duration `toml:"timeout"`
	Retries    int           `toml:"retries"`
	SleepLimit time.Duration `toml:"sleep_limit"`

	// SMaxAge is the shared cache lifetime of successful cards, in seconds.
	SMaxAge int `toml:"s_maxage"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Addr:       DefaultAddr,
		API:        APIREST,
		Timeout:    github.DefaultTimeout,
		SleepLimit: github.DefaultSleepLimit,
		SMaxAge:    DefaultSMaxAge,
	}
}

// LoadConfig builds a Config from defaults, then the TOML file at path (if
// path is non-empty), then the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
// Callers apply their own overrides and then call [Config.Validate].
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("GITHUB_TOKEN"); v != "" {
		c.Token = v
	}
	if v := getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := getenv("COMMITCARD_API"); v != "" {
		c.API = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "addr is required")
	}
	if c.API != APIREST && c.API != APIGraphQL {
		return errors.New(errors.ErrCodeInvalidInput, "api must be %q or %q, got %q", APIREST, APIGraphQL, c.API)
	}
	if c.API == APIGraphQL && c.Token == "" {
		return errors.New(errors.ErrCodeInvalidInput, "api %q requires GITHUB_TOKEN", APIGraphQL)
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must be positive")
	}
	if c.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "retries must not be negative")
	}
	if c.SMaxAge < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "s_maxage must not be negative")
	}
	if c.BaseURL != "" {
		if err := errors.ValidateURL(c.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

// NewFetcher creates the GitHub fetcher selected by c.API.
func (c Config) NewFetcher(opts ...github.Option) (github.Fetcher, error) {
	base := []github.Option{
		github.WithTimeout(c.Timeout),
		github.WithRetries(c.Retries),
		github.WithSleepLimit(c.SleepLimit),
	}
	if c.BaseURL != "" {
		base = append(base, github.WithBaseURL(c.BaseURL))
	}
	opts = append(base, opts...)

	if c.API == APIGraphQL {
		return github.NewGraphQLClient(c.Token, opts...)
	}
	return github.NewClient(c.Token, opts...)
}
