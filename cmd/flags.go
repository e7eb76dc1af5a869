package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// outputFormats are the formats every listing command accepts.
var outputFormats = []string{"table", "json", "yaml"}

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Server flags
	Port           int
	Host           string
	DisableBrowser bool

	// Output flags
	OutputFormat string
}

// AddStandardFlags adds standard flags to a command
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "server":
			addServerFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addServerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVar(&flags.Host, "host", "localhost", "Host to bind to")
	cmd.Flags().BoolVar(&flags.DisableBrowser, "disable-browser", false, "Don't open browser automatically")
	AddFlagValidation(cmd, "port", ValidatePort)
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table|json|yaml)")
	AddFlagValidation(cmd, "output", func(format string) error {
		return ValidateFormat(format, outputFormats)
	})
}

// ShouldOpenBrowser returns whether to open browser based on flags
func (f *StandardFlags) ShouldOpenBrowser() bool {
	return !f.DisableBrowser
}

// BindServerFlags binds the server flags to their config keys, so a flag
// given on the command line overrides the file and the environment.
func BindServerFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		"port": "server.port",
		"host": "server.host",
	}
	for flagName, configKey := range bindings {
		if err := viper.BindPFlag(configKey, cmd.Flags().Lookup(flagName)); err != nil {
			return fmt.Errorf("binding --%s: %w", flagName, err)
		}
	}
	return nil
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidatePort checks a port flag value.
func ValidatePort(portStr string) error {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", portStr)
	}

	// 0 asks the kernel for a free port
	if port < 0 || port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}

	return nil
}

// ValidateFormat checks an output format, suggesting the closest valid one.
func ValidateFormat(format string, valid []string) error {
	if slices.Contains(valid, strings.ToLower(format)) {
		return nil
	}

	msg := fmt.Sprintf("invalid format %q, must be one of: %s", format, strings.Join(valid, ", "))
	for _, v := range valid {
		if strings.HasPrefix(v, strings.ToLower(format)) && format != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", v)
			break
		}
	}
	return fmt.Errorf("%s", msg)
}
