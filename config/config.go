package config

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Scopes   ScopeConfig    `mapstructure:"scopes"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Name          string `mapstructure:"name"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Pool          int    `mapstructure:"pool"`
	SSLMode       string `mapstructure:"ssl_mode"`
	SlowQueryMs   int    `mapstructure:"slow_query_ms"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// ScopeConfig configures the scopes used for tables that have no model type,
// such as those addressed from the command line.
type ScopeConfig struct {
	CreatedAtColumn string   `mapstructure:"created_at_column"`
	Timezone        string   `mapstructure:"timezone"`
	ActiveCheck     []string `mapstructure:"active_check"`
	InactiveCheck   []string `mapstructure:"inactive_check"`
	Locale          string   `mapstructure:"locale"`
	LocalesDir      string   `mapstructure:"locales_dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		App: AppConfig{Name: "recordscope", Env: "development"},
		Database: DatabaseConfig{
			Host:          "localhost",
			Port:          5432,
			User:          "postgres",
			Pool:          10,
			SSLMode:       "disable",
			SlowQueryMs:   200,
			MigrationsDir: "db/migrations",
		},
		Scopes: ScopeConfig{
			CreatedAtColumn: "created_at",
			Locale:          "en",
			LocalesDir:      "config/locales",
		},
		Log: LogConfig{Level: "info"},
	}
}
