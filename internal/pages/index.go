package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/blocks"
	"github.com/conneroisu/panelkit/internal/docs"
	"github.com/conneroisu/panelkit/internal/ui"
)

// Index lists the block gallery and the docs.
func Index(gallery []*blocks.Block, pages []*docs.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Element("h1", "Resizable layouts")
		w.Element("p", "Collapsible panel layouts that remember their sizes across reloads.", "class", "muted")

		w.Raw(`<section id="blocks"><h2>Blocks</h2><div class="card-grid">`)
		for _, b := range gallery {
			w.Raw(`<a class="card"`)
			w.Href(templ.URL("/blocks/" + b.Name))
			w.Attr("data-block", b.Name)
			w.Raw(">")
			w.Element("h3", b.DisplayTitle())
			w.Element("p", b.Description, "class", "muted")
			w.Raw("</a>")
		}
		w.Raw("</div></section>")

		if len(pages) > 0 {
			w.Raw(`<section id="docs"><h2>Docs</h2><ul>`)
			for _, p := range pages {
				w.Raw("<li>")
				w.Raw("<a")
				w.Href(templ.URL(DocsPath(p.Slug)))
				w.Raw(">")
				w.Text(p.Title)
				w.Raw("</a>")
				if p.Description != "" {
					w.Raw(" ")
					w.Element("span", p.Description, "class", "muted")
				}
				w.Raw("</li>")
			}
			w.Raw("</ul></section>")
		}
		return w.Err()
	})
}
