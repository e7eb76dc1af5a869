package ui

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, ctx context.Context, c templ.Component) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func withAttr(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		_, ok := attr(n, name)
		return ok
	}
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func withProvider(states map[string]bool, layouts map[string]layout.GroupSizes) context.Context {
	return layout.WithProvider(context.Background(),
		layout.NewProvider(states, nil, layout.WithLayouts(layouts)))
}

func text(s string) SlotFunc {
	return func(r layout.Region) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>"+templ.EscapeString(s+":"+r.ID)+"</p>")
			return err
		})
	}
}

func threeColumn() *layout.Group {
	return layout.NewGroup("editor", layout.Horizontal,
		layout.PanelRegion("left", layout.SideLeft).WithSizes(25, 30, 35),
		layout.ContentRegion("main").WithSizes(30, 40, 100),
		layout.PanelRegion("right", layout.SideRight).WithSizes(25, 30, 35),
	).WithInitial(30, 70, 0)
}

func TestGroupRendersPersistedLayout(t *testing.T) {
	ctx := withProvider(map[string]bool{"left": true, "right": false}, nil)
	doc := render(t, ctx, Group(threeColumn(), text("body")))

	groups := findAll(doc, withAttr("data-layout-group"))
	require.Len(t, groups, 1)
	ids, _ := attr(groups[0], "data-ids")
	assert.Equal(t, `["left","main","right"]`, ids)

	var order []string
	for c := groups[0].FirstChild; c != nil; c = c.NextSibling {
		switch {
		case hasClass(c, "layout-handle"):
			id, _ := attr(c, "data-layout-handle")
			order = append(order, "handle:"+id)
		default:
			if id, ok := attr(c, "data-layout-panel"); ok {
				order = append(order, "panel:"+id)
			} else if id, ok := attr(c, "data-layout-content"); ok {
				order = append(order, "content:"+id)
			}
		}
	}
	assert.Equal(t, []string{"panel:left", "handle:left", "content:main", "handle:right", "panel:right"}, order,
		"handles face the content")

	panels := findAll(doc, withAttr("data-layout-panel"))
	require.Len(t, panels, 2)

	left, right := panels[0], panels[1]
	state, _ := attr(left, "data-state")
	assert.Equal(t, "open", state)
	style, _ := attr(left, "style")
	assert.Equal(t, "flex: 30 1 0px", style)
	assert.True(t, hasClass(left, "border-r"))
	assert.True(t, hasClass(left, "transition-all"))

	state, _ = attr(right, "data-state")
	assert.Equal(t, "closed", state)
	style, _ = attr(right, "style")
	assert.Equal(t, "flex: 0 1 0px", style)
	assert.False(t, hasClass(right, "border-l"))

	handles := findAll(doc, withAttr("data-layout-handle"))
	require.Len(t, handles, 2)
	_, hidden := attr(handles[0], "hidden")
	assert.False(t, hidden)
	_, hidden = attr(handles[1], "hidden")
	assert.True(t, hidden, "a closed panel's handle is hidden")
}

func TestGroupOpenRightPanelHasLeftBorder(t *testing.T) {
	ctx := withProvider(map[string]bool{"right": true}, nil)
	doc := render(t, ctx, Group(threeColumn(), text("body")))

	right := findAll(doc, func(n *html.Node) bool {
		v, _ := attr(n, "data-layout-panel")
		return v == "right"
	})
	require.Len(t, right, 1)
	assert.True(t, hasClass(right[0], "border-l"))
	style, _ := attr(right[0], "style")
	assert.Equal(t, "flex: 30 1 0px", style, "opens at its declared default")
}

func TestGroupDisableTransition(t *testing.T) {
	region := layout.PanelRegion("nav", layout.SideLeft)
	region.DisableTransition = true
	g := layout.NewGroup("g", "", region, layout.ContentRegion("main"))

	doc := render(t, withProvider(map[string]bool{"nav": true}, nil), Group(g, text("x")))
	panel := findAll(doc, withAttr("data-layout-panel"))
	require.Len(t, panel, 1)
	assert.False(t, hasClass(panel[0], "transition-all"))
}

func TestGroupPassesThroughStaticAndInvalidRegions(t *testing.T) {
	g := layout.NewGroup("g", layout.Vertical,
		layout.StaticRegion("banner"),
		layout.Region{Kind: layout.Kind(9), ID: "odd"},
		layout.ContentRegion("main"),
	)
	doc := render(t, withProvider(nil, nil), Group(g, text("slot")))

	static := findAll(doc, withAttr("data-layout-static"))
	require.Len(t, static, 1)
	assert.Contains(t, static[0].FirstChild.FirstChild.Data, "slot:banner")

	invalid := findAll(doc, withAttr("data-layout-invalid"))
	require.Len(t, invalid, 1)

	groups := findAll(doc, withAttr("data-layout-group"))
	assert.True(t, hasClass(groups[0], "layout-group-vertical"))
}

func TestGroupRequiresProvider(t *testing.T) {
	assert.PanicsWithValue(t, "layout: Group must be used within a Provider", func() {
		_ = Group(threeColumn(), text("x")).Render(context.Background(), io.Discard)
	})
}

func TestActionButton(t *testing.T) {
	ctx := withProvider(map[string]bool{"left": true}, nil)
	doc := render(t, ctx, ActionButton(layout.ActionToggle, "left", `Toggle <prompt>`))

	forms := findAll(doc, func(n *html.Node) bool { return n.Data == "form" })
	require.Len(t, forms, 1)
	action, _ := attr(forms[0], "action")
	assert.Equal(t, "/api/layout/panels/left/toggle", action)

	buttons := findAll(doc, withAttr("data-layout-action"))
	require.Len(t, buttons, 1)
	state, _ := attr(buttons[0], "data-state")
	assert.Equal(t, "open", state)
	expanded, _ := attr(buttons[0], "aria-expanded")
	assert.Equal(t, "true", expanded)
	title, _ := attr(buttons[0], "title")
	assert.Equal(t, "Toggle <prompt>", title)
}

func TestActionButtonKinds(t *testing.T) {
	ctx := withProvider(nil, nil)

	doc := render(t, ctx, ActionButton(layout.ActionClose, "nav panel", "Close"))
	forms := findAll(doc, func(n *html.Node) bool { return n.Data == "form" })
	require.Len(t, forms, 1)
	action, _ := attr(forms[0], "action")
	assert.Equal(t, "/api/layout/panels/nav%20panel/close", action)

	button := findAll(doc, withAttr("data-layout-action"))[0]
	_, ok := attr(button, "aria-expanded")
	assert.False(t, ok, "only toggles describe expansion")

	var buf bytes.Buffer
	err := ActionButton("flip", "nav", "Flip").Render(ctx, &buf)
	assert.Error(t, err)
}

func TestActionButtonRequiresProvider(t *testing.T) {
	assert.PanicsWithValue(t, "layout: OpenAction must be used within a Provider", func() {
		_ = ActionButton(layout.ActionOpen, "nav", "Open").Render(context.Background(), io.Discard)
	})
}

func TestDocument(t *testing.T) {
	doc := render(t, context.Background(), Document(DocumentOptions{Title: "A <b>", LiveReload: true}, templ.Raw("<main>hi</main>")))

	titles := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, titles, 1)
	assert.Equal(t, "A <b> · panelkit", titles[0].FirstChild.Data)

	bodies := findAll(doc, func(n *html.Node) bool { return n.Data == "body" })
	require.Len(t, bodies, 1)
	_, live := attr(bodies[0], "data-live-reload")
	assert.True(t, live)
	assert.Len(t, findAll(doc, func(n *html.Node) bool { return n.Data == "main" }), 1)
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"panels.js", "panelkit.css"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}
