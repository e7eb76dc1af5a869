package errors

import (
	"fmt"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

// ServerStartError generates suggestions for server startup issues
func ServerStartError(err error, port int) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{}

	errStr := err.Error()

	if strings.Contains(errStr, "address already in use") || strings.Contains(errStr, "bind") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Port already in use",
			Description: fmt.Sprintf("Port %d is already being used by another process", port),
			Command:     fmt.Sprintf("lsof -i :%d", port),
		})

		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use a different port",
			Description: "Start the server on a different port",
			Command:     fmt.Sprintf("panelkit serve --port %d", port+1000),
		})
	}

	if strings.Contains(errStr, "permission denied") && port < 1024 {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use unprivileged port",
			Description: "Ports below 1024 require root privileges",
			Command:     "panelkit serve --port 8080",
		})
	}

	return suggestions
}

// ConfigurationError generates suggestions for configuration issues
func ConfigurationError(configError string, configPath string) []ErrorSuggestion {
	suggestions := []ErrorSuggestion{
		{
			Title:       "Check configuration file",
			Description: "Verify your .panelkit.yml file exists and has valid syntax",
			Command:     "cat " + configPath,
		},
	}

	if strings.Contains(configError, "cookie") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Fix the layout cookie settings",
			Description: "Cookie names may only contain letters, digits, '-' and '_'",
			Example:     "layout:\n  cookie_name: resizable-layout",
		})
	}

	if strings.Contains(configError, "port") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use a valid port",
			Description: "Ports must be between 0 and 65535",
			Example:     "server:\n  port: 8080",
		})
	}

	if strings.Contains(configError, "content_dir") {
		suggestions = append(suggestions, ErrorSuggestion{
			Title:       "Use a relative docs directory",
			Description: "The docs content directory must stay inside the project",
			Example:     "docs:\n  content_dir: ./content/docs",
		})
	}

	return suggestions
}

// FormatSuggestions formats suggestions into a user-friendly string
func FormatSuggestions(title string, suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return title
	}

	var output strings.Builder
	output.WriteString(title + "\n\n")
	output.WriteString("Suggestions:\n")

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion.Title))
		if suggestion.Description != "" {
			output.WriteString(fmt.Sprintf("     %s\n", suggestion.Description))
		}
		if suggestion.Command != "" {
			output.WriteString(fmt.Sprintf("     Run: %s\n", suggestion.Command))
		}
		if suggestion.Example != "" {
			output.WriteString(fmt.Sprintf("     Example: %s\n", suggestion.Example))
		}
		output.WriteString("\n")
	}

	return output.String()
}

// EnhancedError wraps an error with suggestions
type EnhancedError struct {
	OriginalError error
	Title         string
	Suggestions   []ErrorSuggestion
}

// Error implements the error interface
func (e *EnhancedError) Error() string {
	return FormatSuggestions(e.Title, e.Suggestions)
}

// Unwrap returns the original error
func (e *EnhancedError) Unwrap() error {
	return e.OriginalError
}

// NewEnhancedError creates a new enhanced error with suggestions
func NewEnhancedError(title string, originalError error, suggestions []ErrorSuggestion) *EnhancedError {
	return &EnhancedError{
		OriginalError: originalError,
		Title:         title,
		Suggestions:   suggestions,
	}
}
