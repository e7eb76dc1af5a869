package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conneroisu/panelkit/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionFormat string
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for panelkit.

Examples:
  panelkit version                # Version and commit
  panelkit version --short        # Version only
  panelkit version --format json  # Full build info as JSON`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersionCommand(cmd *cobra.Command, _ []string) error {
	return writeVersion(cmd.OutOrStdout(), version.Get(), versionFormat, versionShort)
}

func writeVersion(out io.Writer, info version.BuildInfo, format string, short bool) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "text":
		if short {
			_, err := fmt.Fprintln(out, info.Version)
			return err
		}
		fmt.Fprintf(out, "panelkit %s\n", info.Short())
		fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
		fmt.Fprintf(out, "  platform: %s\n", info.Platform)
		if !info.BuildTime.IsZero() {
			fmt.Fprintf(out, "  built:    %s\n", info.BuildTime.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
