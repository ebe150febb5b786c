// Package config loads console configuration from ~/.hrconsole/config.yaml and
// HRCONSOLE_* environment variables using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/crossorg/hrconsole/internal/errors"
)

// EnvPrefix is the prefix for environment overrides (HRCONSOLE_API_BASE_URL, ...).
const EnvPrefix = "HRCONSOLE"

// DefaultSilentErrors are business messages that views handle in place, so
// the HTTP layer never toasts them.
var DefaultSilentErrors = []string{
	"员工未分配部门",
	"未分配部门",
	"未找到部门",
	"员工未分配公司",
	"未分配公司",
	"未找到公司",
	"离职",
	"员工已离职",
}

// Config is the effective console configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Toast   ToastConfig   `mapstructure:"toast" yaml:"toast"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Mock    MockConfig    `mapstructure:"mock" yaml:"mock"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

type APIConfig struct {
	// BaseURL includes the /api prefix.
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SilentErrors []string      `mapstructure:"silent_errors" yaml:"silent_errors"`
}

type StorageConfig struct {
	// Dir holds the persisted session keys.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type ToastConfig struct {
	MaxVisible   int           `mapstructure:"max_visible" yaml:"max_visible"`
	MaxPerWindow int           `mapstructure:"max_per_window" yaml:"max_per_window"`
	Window       time.Duration `mapstructure:"window" yaml:"window"`
	Duration     time.Duration `mapstructure:"duration" yaml:"duration"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

type MockConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr"`
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
}

type OutputConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// Home returns the console home directory (~/.hrconsole), honouring
// HRCONSOLE_HOME.
func Home() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hrconsole"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// New returns a Viper instance with defaults and env bindings applied.
func New(home string) *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8123/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.silent_errors", DefaultSilentErrors)
	v.SetDefault("storage.dir", filepath.Join(home, "state"))
	v.SetDefault("toast.max_visible", 2)
	v.SetDefault("toast.max_per_window", 5)
	v.SetDefault("toast.window", 3*time.Second)
	v.SetDefault("toast.duration", 3*time.Second)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("mock.addr", ":8123")
	v.SetDefault("mock.jwt_secret", "hrconsole-dev-secret")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.no_color", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path (the default location when empty). A
// missing file is not an error.
func Load(path string) (*Config, *viper.Viper, error) {
	home, err := Home()
	if err != nil {
		return nil, nil, err
	}
	return LoadFrom(home, path)
}

// LoadFrom is Load with an explicit home directory.
func LoadFrom(home, path string) (*Config, *viper.Viper, error) {
	if path == "" {
		path = filepath.Join(home, "config.yaml")
	}

	v := New(home)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, errors.NewConfigInvalidError(path, err)
		}
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Decode unmarshals and validates the Viper state.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigInvalidError("config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would break the client or the toast limiter.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.NewConfigInvalidError("api.base_url", fmt.Errorf("must not be empty"))
	}
	if c.API.Timeout <= 0 {
		return errors.NewConfigInvalidError("api.timeout", fmt.Errorf("must be positive, got %s", c.API.Timeout))
	}
	if c.Toast.MaxVisible < 1 {
		return errors.NewConfigInvalidError("toast.max_visible", fmt.Errorf("must be at least 1"))
	}
	if c.Toast.MaxPerWindow < 1 {
		return errors.NewConfigInvalidError("toast.max_per_window", fmt.Errorf("must be at least 1"))
	}
	if c.Toast.Window <= 0 || c.Toast.Duration <= 0 {
		return errors.NewConfigInvalidError("toast.window", fmt.Errorf("window and duration must be positive"))
	}
	return nil
}
