package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/pokedex/internal/route"
)

// Config holds application configuration.
type Config struct {
	GraphQL GraphQLConfig `mapstructure:"graphql" yaml:"graphql"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// GraphQLConfig holds API endpoint settings.
type GraphQLConfig struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ListSize  int           `mapstructure:"list_size" yaml:"list_size"`
	CacheSize int           `mapstructure:"cache_size" yaml:"cache_size"`
	TokenEnv  string        `mapstructure:"token_env" yaml:"token_env"`
	Token     string        `mapstructure:"token" yaml:"token"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	StartRoute string `mapstructure:"start_route" yaml:"start_route"`
	// Keys overrides the keys bound to an action, e.g. open = ["enter", "l"].
	Keys map[string][]string `mapstructure:"keys" yaml:"keys,omitempty"`
}

// LogConfig holds the file logger settings. An empty Path disables logging.
type LogConfig struct {
	Path     string `mapstructure:"path" yaml:"path"`
	Level    string `mapstructure:"level" yaml:"level"`
	MaxBytes int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
}

const (
	DefaultEndpoint = "https://graphql-pokemon2.vercel.app"
	envPrefix       = "POKEDEX"
	configEnv       = "POKEDEX_CONFIG"
)

var ErrInvalid = errors.New("invalid config")

// Path returns the config file used by Load and Save. POKEDEX_CONFIG wins over
// the default location under the user's config directory.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(configEnv)); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "pokedex", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graphql.endpoint", DefaultEndpoint)
	v.SetDefault("graphql.timeout", "15s")
	v.SetDefault("graphql.list_size", 151)
	v.SetDefault("graphql.cache_size", 256)
	v.SetDefault("graphql.token_env", "POKEDEX_TOKEN")
	v.SetDefault("graphql.token", "")
	v.SetDefault("ui.start_route", route.ListPath)
	v.SetDefault("log.path", filepath.Join(homeDir(), ".local", "state", "pokedex", "pokedex.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_bytes", 5<<20)
}

// Default returns the built-in configuration without touching disk or env.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from Path() and env. Env var overrides use prefix
// POKEDEX_. A missing config file is not an error.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit config file.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to Path(), creating the config directory if needed.
// The token is written as-is; prefer token_env for anything shared.
func Save(cfg Config) (string, error) {
	return SaveTo(Path(), cfg)
}

// SaveTo is Save with an explicit config file.
func SaveTo(path string, cfg Config) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("graphql.endpoint", cfg.GraphQL.Endpoint)
	v.Set("graphql.timeout", cfg.GraphQL.Timeout.String())
	v.Set("graphql.list_size", cfg.GraphQL.ListSize)
	v.Set("graphql.cache_size", cfg.GraphQL.CacheSize)
	v.Set("graphql.token_env", cfg.GraphQL.TokenEnv)
	v.Set("graphql.token", cfg.GraphQL.Token)
	v.Set("ui.start_route", cfg.UI.StartRoute)
	if len(cfg.UI.Keys) > 0 {
		v.Set("ui.keys", cfg.UI.Keys)
	}
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_bytes", cfg.Log.MaxBytes)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.GraphQL.Endpoint))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: graphql.endpoint %q is not an http(s) URL", ErrInvalid, c.GraphQL.Endpoint)
	}
	if c.GraphQL.Timeout < 0 {
		return fmt.Errorf("%w: graphql.timeout must not be negative", ErrInvalid)
	}
	if c.GraphQL.ListSize <= 0 {
		return fmt.Errorf("%w: graphql.list_size must be positive", ErrInvalid)
	}
	if c.GraphQL.CacheSize <= 0 {
		return fmt.Errorf("%w: graphql.cache_size must be positive", ErrInvalid)
	}
	if _, err := route.Parse(c.UI.StartRoute); err != nil {
		return fmt.Errorf("%w: ui.start_route: %v", ErrInvalid, err)
	}
	return nil
}

// ResolveToken picks the API token: the env var named by token_env, then the
// literal token from the file.
func (c Config) ResolveToken() string {
	if env := strings.TrimSpace(c.GraphQL.TokenEnv); env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.GraphQL.Token)
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
