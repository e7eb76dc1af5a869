package blocks

import "github.com/conneroisu/panelkit/internal/layout"

const rightPanel02 = "right-panel_02"

// ResizableLayout02 is an editor canvas with a prompt panel on the right,
// closed on a first visit.
func ResizableLayout02() *Block {
	return &Block{
		Name:        "resizable-layout-02",
		Description: sharedDescription,
		Header:      "Untitled",
		Group: layout.NewGroup("resizable-layout-02", layout.Horizontal,
			layout.ContentRegion("canvas").WithSizes(60, 60, 100),
			layout.PanelRegion(rightPanel02, layout.SideRight).WithSizes(30, 35, 35),
		).WithInitial(100, 0),
		Defaults: map[string]bool{rightPanel02: false},
		Controls: []Control{
			{Kind: layout.ActionToggle, Panel: rightPanel02, Label: "Toggle prompt", Slot: "canvas"},
		},
		Panes: map[string]Pane{
			"canvas": {Heading: "Canvas", Text: "Nothing here yet."},
			rightPanel02: {
				Heading: "What do you want to make?",
				Items:   []string{"Signup flow", "Gradient gallery", "Data dashboard"},
			},
		},
		SourceFile: "resizable_layout_02.go",
	}
}
