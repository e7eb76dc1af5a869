package blocks

import "github.com/conneroisu/panelkit/internal/layout"

const (
	leftPanel03  = "left-panel_03"
	rightPanel03 = "right-panel_03"
)

// ResizableLayout03 flanks an editor with a prompt panel, open by default,
// and a properties panel, closed by default.
func ResizableLayout03() *Block {
	return &Block{
		Name:        "resizable-layout-03",
		Description: sharedDescription,
		Header:      "Untitled",
		Group: layout.NewGroup("resizable-layout-03", layout.Horizontal,
			layout.PanelRegion(leftPanel03, layout.SideLeft).WithSizes(25, 30, 35),
			layout.ContentRegion("editor").WithSizes(30, 40, 100),
			layout.PanelRegion(rightPanel03, layout.SideRight).WithSizes(25, 30, 35),
		).WithInitial(30, 70, 0),
		Defaults: map[string]bool{leftPanel03: true, rightPanel03: false},
		Controls: []Control{
			{Kind: layout.ActionToggle, Panel: leftPanel03, Label: "Toggle prompt", Slot: "editor"},
			{Kind: layout.ActionToggle, Panel: rightPanel03, Label: "Toggle properties", Slot: "editor"},
		},
		Panes: map[string]Pane{
			leftPanel03: {
				Heading: "What do you want to make?",
				Items:   []string{"Signup flow", "Gradient gallery", "Data dashboard"},
			},
			"editor": {Heading: "Editor", Text: "Select a component to edit its properties."},
			rightPanel03: {
				Heading: "Properties",
				Items:   []string{"Component", "Style", "Layout", "Spacing"},
			},
		},
		SourceFile: "resizable_layout_03.go",
	}
}
