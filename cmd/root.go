// Package cmd provides the panelkit command-line interface.
//
// Configuration is layered, highest priority first:
//
//  1. Command-line flags (--port, --host, ...)
//  2. PANELKIT_ prefixed environment variables (PANELKIT_SERVER_PORT, ...),
//     including any loaded from a .env file in the working directory
//  3. The config file named by --config or PANELKIT_CONFIG_FILE
//  4. .panelkit.yml in the working directory
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conneroisu/panelkit/internal/config"
	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "panelkit",
	Short: "Docs and block gallery for resizable, collapsible panel layouts",
	Long: `panelkit serves a documentation site and a gallery of layout blocks built
from resizable, collapsible panels. Panel open state and group sizes are kept
in a cookie, so a reload paints the layout the visitor left.

Quick Start:
  panelkit serve                  Start the site
  panelkit list                   List the registered blocks
  panelkit cookie decode VALUE    Inspect a layout cookie`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .panelkit.yml, can also use PANELKIT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig points viper at the config file and the environment.
func initConfig() {
	// a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PANELKIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".panelkit")
	}

	viper.SetEnvPrefix("PANELKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the configuration and wraps failures with suggestions.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = ".panelkit.yml"
		}
		return nil, perrors.NewEnhancedError("Failed to load configuration", err,
			perrors.ConfigurationError(err.Error(), path))
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section. When a log file
// is configured, records go to stderr and to the rotated file.
func newLogger(cfg *config.Config, stderr io.Writer) (logging.Logger, func() error, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	out := stderr
	closeLog := func() error { return nil }
	if cfg.Log.File != "" {
		file := logging.NewRotatingFileWriter(logging.RotatingFileConfig{Path: cfg.Log.File})
		out = io.MultiWriter(stderr, file)
		closeLog = file.Close
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    out,
		Component: "panelkit",
	}), closeLog, nil
}
