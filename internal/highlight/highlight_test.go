package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const sample = `package blocks

func Answer() int { return 42 }
`

func TestHighlightGo(t *testing.T) {
	h := New(DefaultStyle)

	out, err := h.Highlight(sample, "sample.go")
	require.NoError(t, err)

	_, err = html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "Answer")
	assert.Contains(t, out, `class="`)
	assert.NotContains(t, out, "style=\"color", "classes, not inline styles")
}

func TestHighlightEscapesMarkup(t *testing.T) {
	h := New(DefaultStyle)

	out, err := h.Highlight("<script>alert(1)</script>", "page.txt")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestHighlightCaches(t *testing.T) {
	h := New(DefaultStyle)

	first, err := h.Highlight(sample, "sample.go")
	require.NoError(t, err)
	second, err := h.Highlight(sample, "sample.go")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, h.cache, 1)
}

func TestUnknownStyleFallsBack(t *testing.T) {
	h := New("no-such-style")

	css, err := h.CSS()
	require.NoError(t, err)
	assert.NotEmpty(t, css)
}
