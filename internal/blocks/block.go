// Package blocks holds the gallery of pre-built resizable layouts and the
// registry the server looks them up in.
package blocks

import (
	"embed"
	"strings"

	"github.com/conneroisu/panelkit/internal/layout"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed resizable_layout_*.go
var sources embed.FS

// DefaultIframeHeight is the preview height used when a block sets none.
const DefaultIframeHeight = 840

// SlotSidebar places a control in the icon rail outside the group.
const SlotSidebar = "sidebar"

const sharedDescription = "Resizable and collapsible layout. Sizes and open state are kept in a " +
	"cookie that the server reads before rendering, so the layout survives a refresh without " +
	"a flash of the default arrangement."

// Block is one previewable layout.
type Block struct {
	Name         string
	Title        string
	Description  string
	IframeHeight int

	// Header is the title of the top bar; empty means no bar.
	Header string
	Group  *layout.Group
	// Defaults seed panel state when the visitor's cookie has none.
	Defaults map[string]bool
	Controls []Control
	// Panes holds the body of each sized region, keyed by region id.
	Panes map[string]Pane

	// SourceFile names the embedded Go file the block is defined in.
	SourceFile string
}

// Control is a button dispatching a layout action.
type Control struct {
	Kind  layout.ActionKind
	Panel string
	Label string
	// Slot is the id of the region the control renders in, or SlotSidebar.
	Slot string
}

// Pane is the placeholder body of a region.
type Pane struct {
	Heading string
	Text    string
	Items   []string
}

// DisplayTitle returns the title, deriving one from the name when unset.
func (b *Block) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return cases.Title(language.English).String(strings.ReplaceAll(b.Name, "-", " "))
}

// Height returns the preview iframe height in pixels.
func (b *Block) Height() int {
	if b.IframeHeight > 0 {
		return b.IframeHeight
	}
	return DefaultIframeHeight
}

// Source returns the Go source the block is defined in.
func (b *Block) Source() (string, error) {
	data, err := sources.ReadFile(b.SourceFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ControlsIn returns the controls rendered in slot, in declaration order.
func (b *Block) ControlsIn(slot string) []Control {
	var out []Control
	for _, c := range b.Controls {
		if c.Slot == slot {
			out = append(out, c)
		}
	}
	return out
}

// HasSidebar reports whether any control lives in the icon rail.
func (b *Block) HasSidebar() bool {
	return len(b.ControlsIn(SlotSidebar)) > 0
}
