// Package pages composes the site's pages from the ui primitives.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/ui"
)

// Site wraps main content in the header every non-preview page shares.
func Site(title string, liveReload bool, main templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Raw(`<header class="site-header">`)
		w.Raw(`<a href="/"><strong>panelkit</strong></a><nav>`)
		w.Element("a", "Blocks", "href", "/#blocks")
		w.Element("a", "Docs", "href", "/docs/")
		w.Raw(`</nav></header><main class="site-main">`)
		w.Component(ctx, main)
		w.Raw("</main>")
		return w.Err()
	})
	return ui.Document(ui.DocumentOptions{Title: title, LiveReload: liveReload}, body)
}

// NotFound is the 404 page body.
func NotFound(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := ui.NewWriter(out)
		w.Element("h1", "Not found")
		w.Element("p", message, "class", "muted")
		w.Raw(`<p><a href="/">Back to the gallery</a></p>`)
		return w.Err()
	})
}
