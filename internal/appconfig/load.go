package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envOverrides are applied after the YAML file. Empty values are ignored.
type envOverrides struct {
	Addr              string `env:"PARAMEDIT_ADDR"`
	BasePath          string `env:"PARAMEDIT_BASE_PATH"`
	SessionTTLMinutes int    `env:"PARAMEDIT_SESSION_TTL_MINUTES"`
	IDPolicy          string `env:"PARAMEDIT_ID_POLICY"`
	Seed              string `env:"PARAMEDIT_SEED"`
	Locale            string `env:"PARAMEDIT_LOCALE"`
	Format            string `env:"PARAMEDIT_FORMAT"`
	Theme             string `env:"PARAMEDIT_THEME"`
	ThemeVariant      string `env:"PARAMEDIT_THEME_VARIANT"`
	DisableRequestLog bool   `env:"PARAMEDIT_DISABLE_REQUEST_LOG"`
}

// LoadDotEnv loads the given .env files (".env" when none) into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("appconfig: load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads configuration from path. An empty path falls back to
// DefaultConfigPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	optional := false
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
		optional = true
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.base_path", cfg.HTTP.BasePath)
	v.SetDefault("http.session_cookie", cfg.HTTP.SessionCookie)
	v.SetDefault("http.session_ttl_minutes", cfg.HTTP.SessionTTLMinutes)
	v.SetDefault("http.shutdown_grace_seconds", cfg.HTTP.ShutdownGraceSeconds)
	v.SetDefault("editor.id_policy", cfg.Editor.IDPolicy)
	v.SetDefault("editor.seed", cfg.Editor.Seed)
	v.SetDefault("editor.locale", cfg.Editor.Locale)
	v.SetDefault("editor.format", cfg.Editor.Format)
	v.SetDefault("theme.name", cfg.Theme.Name)
	v.SetDefault("theme.variant", cfg.Theme.Variant)
	v.SetDefault("theme.tokens", cfg.Theme.Tokens)
	v.SetDefault("theme.variants", cfg.Theme.Variants)
	v.SetDefault("logging.disable_request_log", cfg.Logging.DisableRequestLog)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || !optional {
			return Config{}, fmt.Errorf("appconfig: read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("appconfig: decode %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("appconfig: parse env: %w", err)
	}
	setString(&cfg.HTTP.Addr, overrides.Addr)
	setString(&cfg.HTTP.BasePath, overrides.BasePath)
	if overrides.SessionTTLMinutes > 0 {
		cfg.HTTP.SessionTTLMinutes = overrides.SessionTTLMinutes
	}
	setString(&cfg.Editor.IDPolicy, overrides.IDPolicy)
	setString(&cfg.Editor.Seed, overrides.Seed)
	setString(&cfg.Editor.Locale, overrides.Locale)
	setString(&cfg.Editor.Format, overrides.Format)
	setString(&cfg.Theme.Name, overrides.Theme)
	setString(&cfg.Theme.Variant, overrides.ThemeVariant)
	if overrides.DisableRequestLog {
		cfg.Logging.DisableRequestLog = true
	}
	return nil
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}
