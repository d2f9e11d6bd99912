package cli

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gpahal/mtrand/config"
	"github.com/gpahal/mtrand/log"
)

// Config holds CLI configuration. It can be read from a JSON file with
// --config; flags given on the command line take precedence.
type Config struct {
	// Seed fixes the generator seed. Nil seeds from system entropy.
	Seed      *uint32 `mapstructure:"seed"`
	LogFormat string  `mapstructure:"log_format" validate:"omitempty,oneof=console json"`
	LogLevel  string  `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	// Remote is the base url of an mtrand server. When set, the generator
	// commands call it instead of generating locally.
	Remote  string       `mapstructure:"remote" validate:"omitempty,url"`
	Charset string       `mapstructure:"charset"`
	Server  ServerConfig `mapstructure:"server"`
	Client  ClientConfig `mapstructure:"client"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gte=0,lte=65535"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

type ClientConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxAttempts  int           `mapstructure:"max_attempts" validate:"gte=1,lte=20"`
	RetryTimeout time.Duration `mapstructure:"retry_timeout" validate:"gte=0"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LogFormat: log.FormatConsole,
		LogLevel:  "info",
		Server: ServerConfig{
			Port:            8080,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Client: ClientConfig{
			Timeout:      10 * time.Second,
			MaxAttempts:  3,
			RetryTimeout: 30 * time.Second,
		},
	}
}

// LoadConfig returns the defaults overlaid with the file at path. An empty
// path returns the validated defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := validator.New()
	if path == "" {
		return cfg, v.Struct(cfg)
	}

	if err := config.LoadWithOptions(path, cfg, config.LoadOptions{Validator: v, ErrorUnused: true}); err != nil {
		return nil, err
	}
	return cfg, nil
}
