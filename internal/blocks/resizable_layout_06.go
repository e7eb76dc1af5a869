package blocks

import "github.com/conneroisu/panelkit/internal/layout"

const leftPanel06 = "left_panel_06"

// ResizableLayout06 is a file browser. The icon rail only ever opens the
// navigation panel; the panel closes itself from its own header.
func ResizableLayout06() *Block {
	return &Block{
		Name:        "resizable-layout-06",
		Description: sharedDescription,
		Group: layout.NewGroup("resizable-layout-06", layout.Horizontal,
			layout.PanelRegion(leftPanel06, layout.SideLeft).WithSizes(20, 30, 35),
			layout.ContentRegion("files").WithSizes(70, 70, 100),
		).WithInitial(25, 75),
		Defaults: map[string]bool{leftPanel06: true},
		Controls: []Control{
			{Kind: layout.ActionOpen, Panel: leftPanel06, Label: "Playground", Slot: SlotSidebar},
			{Kind: layout.ActionOpen, Panel: leftPanel06, Label: "Models", Slot: SlotSidebar},
			{Kind: layout.ActionOpen, Panel: leftPanel06, Label: "Documentation", Slot: SlotSidebar},
			{Kind: layout.ActionOpen, Panel: leftPanel06, Label: "Settings", Slot: SlotSidebar},
			{Kind: layout.ActionClose, Panel: leftPanel06, Label: "Close Panel", Slot: leftPanel06},
			{Kind: layout.ActionToggle, Panel: leftPanel06, Label: "Toggle navigation", Slot: "files"},
		},
		Panes: map[string]Pane{
			leftPanel06: {
				Heading: "Resizable",
				Items:   []string{"Dashboard", "History", "Starred", "Settings"},
			},
			"files": {
				Heading: "Recent",
				Items:   []string{"Project proposal", "Quarterly report", "Design system"},
			},
		},
		SourceFile: "resizable_layout_06.go",
	}
}
