package ui

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/layout"
)

// SlotFunc returns the body rendered inside a region.
type SlotFunc func(region layout.Region) templ.Component

// Group renders an arranged layout group. Sizes and open state come from the
// Provider in ctx, so the markup already reflects the visitor's persisted
// layout; rendering panics when ctx carries none.
func Group(g *layout.Group, slot SlotFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		placements := g.Arrange(ctx)

		ids, err := json.Marshal(g.SizedIDs())
		if err != nil {
			return err
		}

		w := NewWriter(out)
		w.Raw("<div")
		w.Attr("data-layout-group", g.Key)
		w.Attr("data-direction", string(g.Direction))
		w.Attr("data-ids", string(ids))
		w.Classes("layout-group", templ.KV("layout-group-vertical", g.Direction == layout.Vertical))
		w.Raw(">")
		for _, p := range placements {
			renderPlacement(ctx, w, g, p, slot)
		}
		w.Raw("</div>")
		return w.Err()
	})
}

func renderPlacement(ctx context.Context, w *Writer, g *layout.Group, p layout.Placement, slot SlotFunc) {
	switch {
	case p.Err != nil:
		w.Raw("<div")
		w.Attr("data-layout-invalid", p.Err.Error())
		w.Raw(">")
		w.Component(ctx, slot(p.Region))
		w.Raw("</div>")
	case !p.Sized:
		w.Raw("<div")
		w.Attr("data-layout-static", p.Region.ID)
		w.Raw(">")
		w.Component(ctx, slot(p.Region))
		w.Raw("</div>")
	case p.Region.Kind == layout.KindContent:
		w.Raw("<div")
		w.Attr("data-layout-content", p.Region.ID)
		sizeAttrs(w, p)
		w.Classes("layout-content")
		w.Raw(">")
		w.Component(ctx, slot(p.Region))
		w.Raw("</div>")
	case p.Region.Side == layout.SideRight:
		renderHandle(w, g, p)
		renderPanel(ctx, w, p, slot)
	default:
		renderPanel(ctx, w, p, slot)
		renderHandle(w, g, p)
	}
}

func renderPanel(ctx context.Context, w *Writer, p layout.Placement, slot SlotFunc) {
	r := p.Region
	ctl := layout.NewPanel(ctx, r)
	open := ctl.IsOpen()

	w.Raw("<div")
	w.Attr("id", PanelElementID(r.ID))
	w.Attr("data-layout-panel", r.ID)
	w.Attr("data-side", string(r.Side))
	w.Attr("data-state", ctl.State().String())
	w.BoolAttr("data-collapse-on-resize", r.CollapseOnResize)
	sizeAttrs(w, p)
	w.Classes("layout-panel",
		templ.KV(layout.TransitionClass, ctl.TransitionEnabled()),
		templ.KV("border-r", open && r.Side == layout.SideLeft),
		templ.KV("border-l", open && r.Side == layout.SideRight),
	)
	w.Raw(">")
	w.Component(ctx, slot(r))
	w.Raw("</div>")
}

// renderHandle writes the drag handle on the side of the panel that faces
// the content. It is hidden while the panel is closed.
func renderHandle(w *Writer, g *layout.Group, p layout.Placement) {
	orientation := "vertical"
	if g.Direction == layout.Vertical {
		orientation = "horizontal"
	}

	w.Raw("<div")
	w.Attr("role", "separator")
	w.Attr("tabindex", "0")
	w.Attr("data-layout-handle", p.Region.ID)
	w.Attr("aria-controls", PanelElementID(p.Region.ID))
	w.Attr("aria-orientation", orientation)
	w.Attr("aria-valuenow", Percent(p.Size))
	w.Attr("aria-valuemin", Percent(p.Region.MinSize))
	w.Attr("aria-valuemax", Percent(p.Region.MaxSize))
	w.Classes("layout-handle")
	w.BoolAttr("hidden", !p.Open)
	w.Raw("></div>")
}

func sizeAttrs(w *Writer, p layout.Placement) {
	w.Attr("data-size", Percent(p.Size))
	w.Attr("data-min", Percent(p.Region.MinSize))
	w.Attr("data-default", Percent(p.Region.DefaultSize))
	w.Attr("data-max", Percent(p.Region.MaxSize))
	w.Attr("style", "flex: "+Percent(p.Size)+" 1 0px")
}

// PanelElementID is the DOM id of a panel's element.
func PanelElementID(panelID string) string {
	return "layout-panel-" + panelID
}
