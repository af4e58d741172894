// Package config loads the application configuration from a YAML file and
// CHAMELEON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CHAMELEON_SERVER_PORT.
const EnvPrefix = "CHAMELEON"

// Config is the application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Skin   SkinConfig   `mapstructure:"skin"`
	// Path is the file the configuration was read from, if any.
	Path string `mapstructure:"-"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Debug          bool          `mapstructure:"debug"`
	EnableCORS     bool          `mapstructure:"enable_cors"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

// SkinConfig points the skin at its layout and page data.
type SkinConfig struct {
	LayoutFile      string `mapstructure:"layout_file"`
	ContextFile     string `mapstructure:"context_file"`
	LayoutCacheSize int    `mapstructure:"layout_cache_size"`
	Title           string `mapstructure:"title"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.enable_cors", false)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_grace", 10*time.Second)

	v.SetDefault("skin.layout_file", "layouts/standard.xml")
	v.SetDefault("skin.context_file", "layouts/context.yaml")
	v.SetDefault("skin.layout_cache_size", 32)
	v.SetDefault("skin.title", "Chameleon")
}

// Load reads path (YAML) and applies environment overrides. An empty path
// yields defaults plus environment.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values a server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Skin.LayoutFile) == "" {
		errs = append(errs, errors.New("skin.layout_file is required"))
	}
	if strings.TrimSpace(c.Skin.ContextFile) == "" {
		errs = append(errs, errors.New("skin.context_file is required"))
	}
	return errors.Join(errs...)
}
