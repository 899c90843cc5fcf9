package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for a conversion run.
//
// Fields:
// - Env: The current environment (local, development, production), selects the log handler.
// - MetricsFile: Where to write Prometheus metrics after the run; empty disables it.
// - Sheets: Explicit worksheet names per dataset kind.
// - Columns: Column name overrides per dataset kind and role.
// - Database: Configuration settings for the PostgreSQL output.
type Config struct {
	Env         string                         `mapstructure:"env"`          // Env is the current environment: local, development, production.
	MetricsFile string                         `mapstructure:"metrics_file"` // Path of the node exporter textfile.
	Sheets      map[models.Kind]string         `mapstructure:"-"`            // Sheets maps a dataset kind to a worksheet name.
	Columns     map[models.Kind]models.Mapping `mapstructure:"-"`            // Columns maps a dataset kind to role overrides.
	Database    PostgresConfig                 `mapstructure:"postgres"`     // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"db_name"`  // Name is the name of the database.
	SSLMode  string `mapstructure:"sslmode"`  // SSLMode is passed through to the connection string.
}

// DSN renders the configuration as a postgres:// connection URL.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + p.Port,
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}

	return u.String()
}

// rawConfig mirrors the file layout; sheet and column keys are validated
// before they become typed maps.
type rawConfig struct {
	Config  `mapstructure:",squash"`
	Sheets  map[string]string            `mapstructure:"sheets"`
	Columns map[string]map[string]string `mapstructure:"columns"`
}

// Load reads configuration from a .env file (if present), SHEETMAP_* environment
// variables and, when SHEETMAP_CONFIG names one, a YAML/JSON/TOML file.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SHEETMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("metrics_file", "")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db_name", "")
	v.SetDefault("postgres.sslmode", "disable")
	for _, kind := range models.Kinds {
		v.SetDefault("sheets."+string(kind), "")
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg := raw.Config
	var err error
	if cfg.Sheets, err = parseSheets(raw.Sheets); err != nil {
		return nil, err
	}
	if cfg.Columns, err = parseColumns(raw.Columns); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ErrUnknownRole is returned for a column override naming a role the kind does not have.
var ErrUnknownRole = errors.New("unknown role")

func parseSheets(raw map[string]string) (map[models.Kind]string, error) {
	sheets := make(map[models.Kind]string, len(raw))
	for key, name := range raw {
		kind, err := models.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("invalid sheets entry: %w", err)
		}
		if name != "" {
			sheets[kind] = name
		}
	}

	return sheets, nil
}

func parseColumns(raw map[string]map[string]string) (map[models.Kind]models.Mapping, error) {
	columns := make(map[models.Kind]models.Mapping, len(raw))
	for key, roles := range raw {
		kind, err := models.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("invalid columns entry: %w", err)
		}

		mapping := make(models.Mapping, len(roles))
		for role, col := range roles {
			if !kind.HasRole(models.Role(role)) {
				return nil, fmt.Errorf("invalid columns entry: %w %q for %s", ErrUnknownRole, role, kind)
			}
			mapping[models.Role(role)] = col
		}
		columns[kind] = mapping
	}

	return columns, nil
}
