package ui

import (
	"context"
	"embed"
	"io"
	"io/fs"

	"github.com/a-h/templ"
)

//go:embed static
var staticFiles embed.FS

// Static returns the stylesheet and client script served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// DocumentOptions configures the page shell.
type DocumentOptions struct {
	Title string
	// LiveReload connects the page to the reload websocket.
	LiveReload bool
	// Frame marks a page rendered inside a preview iframe.
	Frame bool
}

// Document wraps body in the html shell every page shares.
func Document(opts DocumentOptions, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		title := "panelkit"
		if opts.Title != "" {
			title = opts.Title + " · panelkit"
		}

		w := NewWriter(out)
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.Element("title", title)
		w.Raw(`<link rel="stylesheet" href="/static/panelkit.css">`)
		w.Raw(`<link rel="stylesheet" href="/static/highlight.css">`)
		w.Raw(`<script src="/static/panels.js" defer></script>`)
		w.Raw("</head><body")
		w.Classes(templ.KV("frame", opts.Frame))
		w.BoolAttr("data-live-reload", opts.LiveReload)
		w.Raw(">")
		w.Component(ctx, body)
		w.Raw("</body></html>")
		return w.Err()
	})
}
