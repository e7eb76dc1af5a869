package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/blocks"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/conneroisu/panelkit/internal/ui"
)

// Tab is a block viewer tab.
type Tab string

const (
	TabPreview Tab = "preview"
	TabCode    Tab = "code"
)

// ParseTab maps a query value to a tab, defaulting to the preview.
func ParseTab(s string) Tab {
	if Tab(s) == TabCode {
		return TabCode
	}
	return TabPreview
}

// ViewPath is the URL of a block's full page render.
func ViewPath(name string) string {
	return "/view/" + name
}

// Viewer shows a block either as a live iframe preview or as its
// highlighted source.
func Viewer(b *blocks.Block, tab Tab, sourceHTML string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Element("h1", b.DisplayTitle())
		w.Element("p", b.Description, "class", "muted")

		w.Raw(`<div class="viewer-toolbar"><div class="tabs" role="tablist">`)
		for _, t := range []struct {
			tab   Tab
			label string
		}{{TabPreview, "Preview"}, {TabCode, "Code"}} {
			w.Raw(`<a role="tab"`)
			w.Href(templ.URL("/blocks/" + b.Name + "?tab=" + string(t.tab)))
			w.Attr("aria-selected", strconv.FormatBool(tab == t.tab))
			w.Raw(">")
			w.Text(t.label)
			w.Raw("</a>")
		}
		w.Raw("</div><a")
		w.Href(templ.URL(ViewPath(b.Name)))
		w.Raw(` target="_blank" rel="noreferrer">Open in new tab</a></div>`)

		if tab == TabCode {
			w.Raw(`<div class="viewer-code" role="tabpanel">`)
			// chroma output, every token already escaped
			w.Raw(sourceHTML)
			w.Raw("</div>")
			return w.Err()
		}

		w.Raw(`<iframe class="viewer-frame" role="tabpanel" loading="lazy"`)
		w.Attr("src", string(templ.URL(ViewPath(b.Name))))
		w.Attr("title", b.DisplayTitle())
		w.Attr("height", strconv.Itoa(b.Height()))
		w.Raw("></iframe>")
		return w.Err()
	})
}

// View renders a block as a full page. The Provider in ctx decides every
// panel's first-paint state and size.
func View(b *blocks.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Raw("<div")
		w.Attr("data-block", b.Name)
		w.Raw(` class="block">`)
		if b.Header != "" {
			w.Raw(`<header class="block-header">`)
			w.Element("span", b.Header)
			w.Raw("</header>")
		}
		w.Raw(`<div class="block-body">`)
		if b.HasSidebar() {
			w.Raw(`<aside class="block-sidebar">`)
			for _, c := range b.ControlsIn(blocks.SlotSidebar) {
				w.Component(ctx, ui.ActionButton(c.Kind, c.Panel, c.Label))
			}
			w.Raw("</aside>")
		}
		w.Component(ctx, ui.Group(b.Group, func(region layout.Region) templ.Component {
			return pane(b, region)
		}))
		w.Raw("</div></div>")
		return w.Err()
	})
}

func pane(b *blocks.Block, region layout.Region) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		p := b.Panes[region.ID]

		w := ui.NewWriter(out)
		w.Raw(`<div class="block-pane">`)
		if controls := b.ControlsIn(region.ID); len(controls) > 0 {
			w.Raw(`<div class="block-controls">`)
			for _, c := range controls {
				w.Component(ctx, ui.ActionButton(c.Kind, c.Panel, c.Label))
			}
			w.Raw("</div>")
		}
		if p.Heading != "" {
			w.Element("h2", p.Heading)
		}
		if p.Text != "" {
			w.Element("p", p.Text, "class", "muted")
		}
		if len(p.Items) > 0 {
			w.Raw("<ul>")
			for _, item := range p.Items {
				w.Element("li", item)
			}
			w.Raw("</ul>")
		}
		w.Raw("</div>")
		return w.Err()
	})
}
