package ui

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/layout"
)

// ActionPath is the endpoint a panel action posts to.
func ActionPath(kind layout.ActionKind, panelID string) string {
	return "/api/layout/panels/" + url.PathEscape(panelID) + "/" + string(kind)
}

// ActionButton renders a button dispatching kind for panelID. It is a plain
// form post, which the client script upgrades to a fetch so the page does
// not reload. Rendering panics when ctx carries no Provider.
func ActionButton(kind layout.ActionKind, panelID, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		action, err := layout.NewAction(ctx, kind, panelID)
		if err != nil {
			return err
		}
		open := action.IsOpen()
		state := layout.StateClosed
		if open {
			state = layout.StateOpen
		}

		w := NewWriter(out)
		w.Raw(`<form method="post"`)
		w.Attr("action", string(templ.URL(ActionPath(kind, panelID))))
		w.Raw(` class="inline-flex">`)

		w.Raw(`<button type="submit"`)
		w.Attr("data-layout-action", string(kind))
		w.Attr("data-panel", panelID)
		w.Attr("data-state", state.String())
		w.Attr("aria-controls", PanelElementID(panelID))
		if kind == layout.ActionToggle {
			w.Attr("aria-expanded", boolString(open))
		}
		w.Attr("title", label)
		w.Classes("icon-button")
		w.Raw(">")
		w.Raw(actionIcon(kind))
		w.Element("span", label, "class", "sr-only")
		w.Raw("</button></form>")
		return w.Err()
	})
}

// actionIcon returns the button's icon. A toggle carries both of its icons
// and the stylesheet shows the one matching data-state, so the client only
// has to flip the attribute.
func actionIcon(kind layout.ActionKind) string {
	switch kind {
	case layout.ActionClose:
		return iconClose
	case layout.ActionOpen:
		return iconPanelOpen
	default:
		return `<span class="icon-when-open">` + iconPanelClose + `</span>` +
			`<span class="icon-when-closed">` + iconPanelOpen + `</span>`
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
