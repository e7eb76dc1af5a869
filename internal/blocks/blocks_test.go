package blocks

import (
	"context"
	"testing"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()
	require.Equal(t, 3, r.Count())

	var names []string
	for _, b := range r.All() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"resizable-layout-02", "resizable-layout-03", "resizable-layout-06"}, names)

	b, err := r.Get("resizable-layout-03")
	require.NoError(t, err)
	assert.Equal(t, "Resizable Layout 03", b.DisplayTitle())
	assert.Equal(t, DefaultIframeHeight, b.Height())

	_, err = r.Get("resizable-layout-99")
	assert.True(t, perrors.IsNotFound(err))
}

func TestBlockSourceIsEmbedded(t *testing.T) {
	for _, b := range Builtin().All() {
		src, err := b.Source()
		require.NoError(t, err, b.Name)
		assert.Contains(t, src, `"`+b.Name+`"`)
		assert.Contains(t, src, "package blocks")
	}

	_, err := (&Block{SourceFile: "missing.go"}).Source()
	assert.Error(t, err)
}

func TestBuiltinFirstPaint(t *testing.T) {
	tests := []struct {
		name  string
		sizes []float64
		open  map[string]bool
	}{
		{"resizable-layout-02", []float64{100, 0}, map[string]bool{rightPanel02: false}},
		{"resizable-layout-03", []float64{30, 70, 0}, map[string]bool{leftPanel03: true, rightPanel03: false}},
		{"resizable-layout-06", []float64{25, 75}, map[string]bool{leftPanel06: true}},
	}

	r := Builtin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := r.Get(tt.name)
			require.NoError(t, err)

			p := layout.NewProvider(layout.NewRecord().PanelStates(b.Defaults), nil)
			ctx := layout.WithProvider(context.Background(), p)

			var sizes []float64
			for _, placement := range b.Group.Arrange(ctx) {
				sizes = append(sizes, placement.Size)
				if placement.Region.Kind == layout.KindPanel {
					assert.Equal(t, tt.open[placement.Region.ID], placement.Open, placement.Region.ID)
				}
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestControlsIn(t *testing.T) {
	b := ResizableLayout06()

	assert.True(t, b.HasSidebar())
	assert.Len(t, b.ControlsIn(SlotSidebar), 4)
	for _, c := range b.ControlsIn(SlotSidebar) {
		assert.Equal(t, layout.ActionOpen, c.Kind)
	}

	closers := b.ControlsIn(leftPanel06)
	require.Len(t, closers, 1)
	assert.Equal(t, layout.ActionClose, closers[0].Kind)

	assert.False(t, ResizableLayout02().HasSidebar())
}

func TestRegisterRejectsMisconfiguredBlocks(t *testing.T) {
	group := func() *layout.Group {
		return layout.NewGroup("g", layout.Horizontal,
			layout.PanelRegion("nav", layout.SideLeft),
			layout.ContentRegion("main"),
		).WithInitial(25, 75)
	}

	tests := []struct {
		name  string
		block *Block
	}{
		{"nil", nil},
		{"no name", &Block{Group: group()}},
		{"no group", &Block{Name: "b"}},
		{"undeclared default", &Block{Name: "b", Group: group(), Defaults: map[string]bool{"ghost": true}}},
		{"undeclared control panel", &Block{Name: "b", Group: group(), Controls: []Control{
			{Kind: layout.ActionToggle, Panel: "ghost", Slot: "main"},
		}}},
		{"unknown control kind", &Block{Name: "b", Group: group(), Controls: []Control{
			{Kind: "flip", Panel: "nav", Slot: "main"},
		}}},
		{"unknown slot", &Block{Name: "b", Group: group(), Controls: []Control{
			{Kind: layout.ActionOpen, Panel: "nav", Slot: "footer"},
		}}},
		{"initial length", &Block{Name: "b", Group: layout.NewGroup("g", "",
			layout.PanelRegion("nav", layout.SideLeft), layout.ContentRegion("main"),
		).WithInitial(100)}},
		{"invalid region", &Block{Name: "b", Group: layout.NewGroup("g", "",
			layout.PanelRegion("nav", layout.SideLeft).WithSizes(40, 30, 20),
		)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.block)
			require.Error(t, err)

			var pe *perrors.PanelkitError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, perrors.ErrCodeBlockInvalid, pe.Code)
			assert.Equal(t, 0, r.Count())
			assert.Panics(t, func() { r.MustRegister(tt.block) })
		})
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	b := ResizableLayout02()
	require.NoError(t, r.Register(b))

	replacement := ResizableLayout02()
	replacement.Title = "Prompt editor"
	require.NoError(t, r.Register(replacement))

	got, err := r.Get(b.Name)
	require.NoError(t, err)
	assert.Equal(t, "Prompt editor", got.DisplayTitle())
	assert.Equal(t, 1, r.Count())
}

func TestPanelDefaultsAndGroups(t *testing.T) {
	r := Builtin()

	assert.Equal(t, map[string]bool{
		rightPanel02: false,
		leftPanel03:  true,
		rightPanel03: false,
		leftPanel06:  true,
	}, r.PanelDefaults())

	g, ok := r.Group("resizable-layout-06")
	require.True(t, ok)
	assert.Equal(t, []string{leftPanel06, "files"}, g.SizedIDs())

	_, ok = r.Group("nope")
	assert.False(t, ok)
}
