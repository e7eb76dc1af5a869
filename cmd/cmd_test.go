package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/conneroisu/panelkit/internal/blocks"
	"github.com/conneroisu/panelkit/internal/config"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/conneroisu/panelkit/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("json", outputFormats))
	assert.NoError(t, ValidateFormat("YAML", outputFormats))

	err := ValidateFormat("js", outputFormats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "json"`)

	err = ValidateFormat("csv", outputFormats)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestValidatePort(t *testing.T) {
	for _, port := range []string{"0", "80", "8080", "65535"} {
		assert.NoError(t, ValidatePort(port), port)
	}
	for _, port := range []string{"-1", "65536", "http"} {
		assert.Error(t, ValidatePort(port), port)
	}
}

func TestFlagValidationRejectsBadValues(t *testing.T) {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags := AddStandardFlags(cmd, "server", "output")

	require.NoError(t, cmd.Flags().Set("port", "3000"))
	assert.Equal(t, 3000, flags.Port)
	assert.Error(t, cmd.Flags().Set("port", "99999"))
	assert.Equal(t, 3000, flags.Port, "a rejected value leaves the flag alone")

	require.NoError(t, cmd.Flags().Set("output", "yaml"))
	assert.Equal(t, "yaml", flags.OutputFormat)
	assert.Error(t, cmd.Flags().Set("output", "xml"))

	assert.True(t, flags.ShouldOpenBrowser())
	require.NoError(t, cmd.Flags().Set("disable-browser", "true"))
	assert.False(t, flags.ShouldOpenBrowser())
}

func TestListBlocks(t *testing.T) {
	items := listBlocks(blocks.Builtin().All(), true)
	require.Len(t, items, 3)

	assert.Equal(t, "resizable-layout-03", items[1].Name)
	assert.Equal(t, "Resizable Layout 03", items[1].Title)
	require.Len(t, items[1].Panels, 2)
	assert.Equal(t, panelListing{ID: "left-panel_03", Side: "left", Min: 25, Default: 30, Max: 35, Open: true}, items[1].Panels[0])

	assert.Empty(t, listBlocks(blocks.Builtin().All(), false)[0].Panels)
}

func TestWriteListingFormats(t *testing.T) {
	items := listBlocks(blocks.Builtin().All(), false)

	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, "json", items, blocksTable))
	var decoded []blockListing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, items, decoded)

	buf.Reset()
	require.NoError(t, writeListing(&buf, "yaml", items, blocksTable))
	decoded = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, items, decoded)

	buf.Reset()
	require.NoError(t, writeListing(&buf, "table", items, blocksTable))
	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "resizable-layout-06")

	assert.Error(t, writeListing(&buf, "xml", items, blocksTable))

	buf.Reset()
	require.NoError(t, writeListing(&buf, "table", []pageListing{}, pagesTable))
	assert.Equal(t, "No docs pages found.\n", buf.String())
}

func TestCookieEncodeDecode(t *testing.T) {
	record, err := buildRecord(
		map[string]string{"nav": "true", "inspector": "false"},
		map[string]string{"dashboard": "25, 75"},
	)
	require.NoError(t, err)

	value := layout.Encode(record)
	decoded, err := layout.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"nav": true, "inspector": false}, decoded.Panels)
	assert.Equal(t, []float64{25, 75}, decoded.Groups["dashboard"].Sizes)

	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, decoded))
	assert.Contains(t, buf.String(), "nav: true")
	assert.Contains(t, buf.String(), "dashboard:")
}

func TestBuildRecordRejects(t *testing.T) {
	_, err := buildRecord(map[string]string{"nav": "maybe"}, nil)
	assert.Error(t, err)

	_, err = buildRecord(nil, map[string]string{"g": "25,x"})
	assert.Error(t, err)

	_, err = buildRecord(nil, map[string]string{"g": "120"})
	assert.Error(t, err)
}

func TestCookieDecodeCommand(t *testing.T) {
	value := layout.Encode(layout.Record{Panels: map[string]bool{"nav": true}})

	var buf bytes.Buffer
	cookieDecodeCmd.SetOut(&buf)
	t.Cleanup(func() { cookieDecodeCmd.SetOut(nil) })

	require.NoError(t, runCookieDecode(cookieDecodeCmd, []string{value}))
	assert.Contains(t, buf.String(), "nav: true")

	assert.Error(t, runCookieDecode(cookieDecodeCmd, []string{"v=9"}))
}

func TestWriteVersion(t *testing.T) {
	info := version.BuildInfo{
		Version:   "v1.2.3",
		GitCommit: "0123456789abcdef",
		BuildTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
	}

	var buf bytes.Buffer
	require.NoError(t, writeVersion(&buf, info, "text", false))
	assert.Contains(t, buf.String(), "panelkit v1.2.3 (0123456)")
	assert.Contains(t, buf.String(), "2026-01-02 03:04:05 UTC")

	buf.Reset()
	require.NoError(t, writeVersion(&buf, info, "text", true))
	assert.Equal(t, "v1.2.3\n", buf.String())

	buf.Reset()
	require.NoError(t, writeVersion(&buf, info, "json", false))
	var decoded version.BuildInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, info, decoded)

	assert.Error(t, writeVersion(&buf, info, "xml", false))
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = t.TempDir() + "/panelkit.log"

	var stderr bytes.Buffer
	logger, closeLog, err := newLogger(cfg, &stderr)
	require.NoError(t, err)
	logger.Info(t.Context(), "hello", "key", "value")
	require.NoError(t, closeLog())
	assert.Contains(t, stderr.String(), "hello")

	cfg.Log.Level = "loud"
	_, _, err = newLogger(cfg, &stderr)
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "list", "cookie", "version"} {
		assert.True(t, names[want], want)
	}
}
