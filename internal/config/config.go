// Package config provides configuration management for panelkit using Viper
// for loading from files, environment variables and command-line flags.
//
// Configuration is read from .panelkit.yml, overridden by PANELKIT_ prefixed
// environment variables (a .env file is loaded first when present) and
// finally by flags bound in the cmd package. Values are validated before use.
package config

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DefaultCookieName is the cookie the layout record lives in.
const DefaultCookieName = "resizable-layout"

type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Layout      LayoutConfig      `yaml:"layout" mapstructure:"layout"`
	Docs        DocsConfig        `yaml:"docs" mapstructure:"docs"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Host           string   `yaml:"host" mapstructure:"host"`
	Open           bool     `yaml:"open" mapstructure:"open"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	Environment    string   `yaml:"environment" mapstructure:"environment"`
}

type LayoutConfig struct {
	CookieName   string `yaml:"cookie_name" mapstructure:"cookie_name"`
	CookiePath   string `yaml:"cookie_path" mapstructure:"cookie_path"`
	CookieMaxAge int    `yaml:"cookie_max_age" mapstructure:"cookie_max_age"`
	CookieSecure bool   `yaml:"cookie_secure" mapstructure:"cookie_secure"`
	SameSite     string `yaml:"same_site" mapstructure:"same_site"`
}

type DocsConfig struct {
	ContentDir string `yaml:"content_dir" mapstructure:"content_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

type DevelopmentConfig struct {
	HotReload bool `yaml:"hot_reload" mapstructure:"hot_reload"`
}

// IsDevelopment reports whether development-only behaviour (warnings about
// malformed layout children, hot reload) should be enabled.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

// SameSiteMode converts the configured same_site string to its http value.
func (c LayoutConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Load reads the configuration currently held by viper and applies defaults.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

func applyDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Port == 0 && !viper.IsSet("server.port") {
		config.Server.Port = 8080
	}
	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}

	if config.Layout.CookieName == "" {
		config.Layout.CookieName = DefaultCookieName
	}
	if config.Layout.CookiePath == "" {
		config.Layout.CookiePath = "/"
	}
	if config.Layout.CookieMaxAge == 0 && !viper.IsSet("layout.cookie_max_age") {
		// one year
		config.Layout.CookieMaxAge = 60 * 60 * 24 * 365
	}
	if config.Layout.SameSite == "" {
		config.Layout.SameSite = "lax"
	}

	if config.Docs.ContentDir == "" {
		config.Docs.ContentDir = "./content/docs"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	// Handle development settings set via viper (workaround for viper bool handling)
	if viper.IsSet("development.hot_reload") {
		config.Development.HotReload = viper.GetBool("development.hot_reload")
	} else {
		config.Development.HotReload = true
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateLayoutConfig(&config.Layout); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}

	if err := validateDocsConfig(&config.Docs); err != nil {
		return fmt.Errorf("docs config: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	// allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " "}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	switch config.Environment {
	case "", "development", "production":
	default:
		return fmt.Errorf("unknown environment %q", config.Environment)
	}

	return nil
}

var cookieNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateLayoutConfig(config *LayoutConfig) error {
	if !cookieNamePattern.MatchString(config.CookieName) {
		return fmt.Errorf("invalid cookie name %q", config.CookieName)
	}
	if !strings.HasPrefix(config.CookiePath, "/") {
		return fmt.Errorf("cookie path must start with '/': %q", config.CookiePath)
	}
	if config.CookieMaxAge < 0 {
		return fmt.Errorf("cookie max age must not be negative: %d", config.CookieMaxAge)
	}
	switch strings.ToLower(config.SameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("invalid cookie same_site %q", config.SameSite)
	}
	if strings.EqualFold(config.SameSite, "none") && !config.CookieSecure {
		return fmt.Errorf("cookie same_site none requires cookie_secure")
	}
	return nil
}

func validateDocsConfig(config *DocsConfig) error {
	if err := validatePath(config.ContentDir); err != nil {
		return fmt.Errorf("invalid content_dir '%s': %w", config.ContentDir, err)
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("path should be relative: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
