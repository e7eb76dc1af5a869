package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/conneroisu/panelkit/internal/blocks"
	"github.com/conneroisu/panelkit/internal/docs"
	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List the registered blocks",
	Long: `List the registered layout blocks with their panels and default state.

Examples:
  panelkit list                   # Table of blocks
  panelkit list -o json           # Output as JSON
  panelkit list --panels          # One row per panel
  panelkit list --docs -o yaml    # List docs pages instead`,
	RunE: runList,
}

var (
	listFlags      *StandardFlags
	listWithPanels bool
	listDocs       bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")
	listCmd.Flags().BoolVar(&listWithPanels, "panels", false, "Include each block's panels")
	listCmd.Flags().BoolVar(&listDocs, "docs", false, "List docs pages instead of blocks")
}

// blockListing is one block as list prints it.
type blockListing struct {
	Name        string         `json:"name" yaml:"name"`
	Title       string         `json:"title" yaml:"title"`
	Group       string         `json:"group" yaml:"group"`
	Height      int            `json:"iframe_height" yaml:"iframe_height"`
	Panels      []panelListing `json:"panels,omitempty" yaml:"panels,omitempty"`
	Description string         `json:"description" yaml:"description"`
}

type panelListing struct {
	ID      string  `json:"id" yaml:"id"`
	Side    string  `json:"side" yaml:"side"`
	Min     float64 `json:"min" yaml:"min"`
	Default float64 `json:"default" yaml:"default"`
	Max     float64 `json:"max" yaml:"max"`
	Open    bool    `json:"open" yaml:"open"`
}

type pageListing struct {
	Slug  string `json:"slug" yaml:"slug"`
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order" yaml:"order"`
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	format := strings.ToLower(listFlags.OutputFormat)

	if listDocs {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		library := docs.NewLibrary(cfg.Docs.ContentDir, logging.Nop())
		if err := library.Reload(cmd.Context()); err != nil {
			return fmt.Errorf("loading docs from %s: %w", cfg.Docs.ContentDir, err)
		}
		return writeListing(out, format, listPages(library.All()), pagesTable)
	}

	return writeListing(out, format, listBlocks(blocks.Builtin().All(), listWithPanels), blocksTable)
}

func listBlocks(all []*blocks.Block, withPanels bool) []blockListing {
	out := make([]blockListing, 0, len(all))
	for _, b := range all {
		item := blockListing{
			Name:        b.Name,
			Title:       b.DisplayTitle(),
			Group:       b.Group.Key,
			Height:      b.Height(),
			Description: b.Description,
		}
		if withPanels {
			for _, p := range b.Group.Panels() {
				item.Panels = append(item.Panels, panelListing{
					ID:      p.ID,
					Side:    string(p.Side),
					Min:     p.MinSize,
					Default: p.DefaultSize,
					Max:     p.MaxSize,
					Open:    b.Defaults[p.ID],
				})
			}
		}
		out = append(out, item)
	}
	return out
}

func listPages(all []*docs.Page) []pageListing {
	out := make([]pageListing, 0, len(all))
	for _, p := range all {
		out = append(out, pageListing{Slug: p.Slug, Title: p.Title, Order: p.Order})
	}
	return out
}

func writeListing[T any](out io.Writer, format string, items []T, table func(io.Writer, []T) error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(items)
	case "table", "":
		return table(out, items)
	default:
		return ValidateFormat(format, outputFormats)
	}
}

func blocksTable(out io.Writer, items []blockListing) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "No blocks registered.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tHEIGHT")
	for _, b := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\n", b.Name, b.Title, b.Height)
		for _, p := range b.Panels {
			state := "closed"
			if p.Open {
				state = "open"
			}
			fmt.Fprintf(w, "  %s\t%s %v/%v/%v\t%s\n", p.ID, p.Side, p.Min, p.Default, p.Max, state)
		}
	}
	return w.Flush()
}

func pagesTable(out io.Writer, items []pageListing) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "No docs pages found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tORDER")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\n", p.Slug, p.Title, p.Order)
	}
	return w.Flush()
}
