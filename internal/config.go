package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/recipebox/internal/store"
)

// Environment variables that override the config file.
const (
	EnvPort        = "PORT"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Storage StorageConfig     `yaml:"storage"`
	Import  ImportConfig      `yaml:"import"`
	Events  EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Import.Validate(); err != nil {
		return err
	}
	return c.Events.Validate()
}

// ApplyEnv overrides file values with PORT and DATABASE_URL when set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.App.HTTP.Port = port
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Storage.DSN = v
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StorageConfig holds the database connection string.
// Accepted forms: postgres://..., sqlite://path, or a bare SQLite file path.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DSN, validation.Required, validation.By(func(any) error {
			_, _, err := store.ParseDSN(c.DSN)
			return err
		})),
	)
}

// ImportConfig controls importing recipe files from a directory.
// An empty Dir disables importing.
type ImportConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the import configuration.
func (c *ImportConfig) Validate() error {
	if c.Watch && c.Dir == "" {
		return errors.New("import: watch is enabled but dir is empty")
	}
	return nil
}

// Enabled reports whether an import directory is configured.
func (c *ImportConfig) Enabled() bool {
	return c.Dir != ""
}

// EventsConfig holds SSE broker configuration.
type EventsConfig struct {
	Throttle time.Duration `yaml:"throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 3000,
			},
		},
		Storage: StorageConfig{
			DSN: "sqlite://./recipebox.db",
		},
		Events: EventsConfig{
			Throttle: 2 * time.Second,
		},
	}
}
