package cmd

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var cookieCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Encode and decode layout cookies",
	Long: `Encode and decode the value of the layout cookie.

Examples:
  panelkit cookie decode 'v=1&p=nav%3A1'
  panelkit cookie encode --panel nav=true --group dashboard=25,75`,
}

var cookieDecodeCmd = &cobra.Command{
	Use:   "decode VALUE",
	Short: "Print the layout stored in a cookie value",
	Args:  cobra.ExactArgs(1),
	RunE:  runCookieDecode,
}

var cookieEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a cookie value from panel states and group sizes",
	Args:  cobra.NoArgs,
	RunE:  runCookieEncode,
}

var (
	cookiePanels map[string]string
	cookieGroups map[string]string
)

func init() {
	rootCmd.AddCommand(cookieCmd)
	cookieCmd.AddCommand(cookieDecodeCmd, cookieEncodeCmd)

	cookieEncodeCmd.Flags().StringToStringVar(&cookiePanels, "panel", nil, "Panel state as id=true|false (repeatable)")
	cookieEncodeCmd.Flags().StringToStringVar(&cookieGroups, "group", nil, "Group sizes as key=size,size,... (repeatable)")
}

func runCookieDecode(cmd *cobra.Command, args []string) error {
	value := args[0]
	// values copied from browser devtools are often still query-escaped
	if unescaped, err := url.QueryUnescape(value); err == nil && strings.HasPrefix(unescaped, "v=") && !strings.HasPrefix(value, "v=") {
		value = unescaped
	}

	record, err := layout.Decode(value)
	if err != nil {
		return fmt.Errorf("decoding layout cookie: %w", err)
	}
	return writeRecord(cmd.OutOrStdout(), record)
}

func runCookieEncode(cmd *cobra.Command, _ []string) error {
	record, err := buildRecord(cookiePanels, cookieGroups)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), layout.Encode(record))
	return err
}

func buildRecord(panels, groups map[string]string) (layout.Record, error) {
	record := layout.NewRecord()
	for id, raw := range panels {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return record, fmt.Errorf("panel %q: %w", id, err)
		}
		record.Panels[id] = open
	}
	for key, raw := range groups {
		var sizes []float64
		for _, part := range strings.Split(raw, ",") {
			size, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil || size < 0 || size > 100 {
				return record, fmt.Errorf("group %q: invalid size %q", key, part)
			}
			sizes = append(sizes, size)
		}
		record.Groups[key] = layout.GroupSizes{Sizes: sizes}
	}
	return record, nil
}

func writeRecord(out io.Writer, record layout.Record) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(record)
}
