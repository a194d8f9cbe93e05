package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads <dir>/app.yaml, merges <dir>/environments/<APP_ENV>.yaml when it
// exists and applies environment variables (scopes.timezone -> SCOPES_TIMEZONE).
// A missing app.yaml yields Defaults overlaid with the environment.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := Env()
	v.AddConfigPath(dir)
	v.SetConfigName("app")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read app.yaml: %w", err)
		}
	}

	v.SetConfigName("environments/" + env)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read environments/%s.yaml: %w", env, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.App.Env = env
	return &cfg, nil
}

// Env returns APP_ENV, defaulting to development.
func Env() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

// Location resolves the configured timezone; empty means the process zone.
func (c ScopeConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scopes.timezone: %w", err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.pool", d.Database.Pool)
	v.SetDefault("database.ssl_mode", d.Database.SSLMode)
	v.SetDefault("database.slow_query_ms", d.Database.SlowQueryMs)
	v.SetDefault("database.migrations_dir", d.Database.MigrationsDir)
	v.SetDefault("scopes.created_at_column", d.Scopes.CreatedAtColumn)
	v.SetDefault("scopes.timezone", d.Scopes.Timezone)
	v.SetDefault("scopes.active_check", d.Scopes.ActiveCheck)
	v.SetDefault("scopes.inactive_check", d.Scopes.InactiveCheck)
	v.SetDefault("scopes.locale", d.Scopes.Locale)
	v.SetDefault("scopes.locales_dir", d.Scopes.LocalesDir)
	v.SetDefault("log.level", d.Log.Level)
}
