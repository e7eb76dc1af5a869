package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/docs"
	"github.com/conneroisu/panelkit/internal/ui"
)

// DocsPath is the URL of a docs page.
func DocsPath(slug string) string {
	if slug == "index" {
		return "/docs/"
	}
	return "/docs/" + strings.TrimSuffix(slug, "/index")
}

// Docs renders a page next to the docs navigation.
func Docs(page *docs.Page, nav []*docs.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Raw(`<div class="docs"><nav aria-label="Docs">`)
		for _, p := range nav {
			w.Raw("<a")
			w.Href(templ.URL(DocsPath(p.Slug)))
			if p.Slug == page.Slug {
				w.Attr("aria-current", "page")
			}
			w.Raw(">")
			w.Text(p.Title)
			w.Raw("</a>")
		}
		w.Raw(`</nav><article class="prose">`)
		if !strings.HasPrefix(strings.TrimSpace(page.HTML), "<h1") {
			w.Element("h1", page.Title)
		}
		if page.Description != "" {
			w.Element("p", page.Description, "class", "muted")
		}
		if len(page.Headings) > 1 {
			w.Raw(`<ul class="toc">`)
			for _, h := range page.Headings {
				w.Raw("<li")
				w.Classes(templ.KV("toc-nested", h.Level > 2))
				w.Raw("><a")
				w.Href(templ.URL("#" + h.ID))
				w.Raw(">")
				w.Text(h.Text)
				w.Raw("</a></li>")
			}
			w.Raw("</ul>")
		}
		// rendered by goldmark with raw HTML disabled
		w.Raw(page.HTML)
		w.Raw("</article></div>")
		return w.Err()
	})
}
