// Package highlight renders block source as syntax highlighted HTML.
package highlight

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Highlighter formats source with class based markup and caches the result
// per file, since block sources are embedded and never change at runtime.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter

	mu    sync.Mutex
	cache map[string]string
}

// New creates a highlighter for the named chroma style.
func New(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style: style,
		formatter: html.New(
			html.WithClasses(true),
			html.WithLineNumbers(true),
			html.TabWidth(4),
		),
		cache: make(map[string]string),
	}
}

// Highlight returns source as HTML. The lexer is picked from fileName and
// falls back to content analysis.
func (h *Highlighter) Highlight(source, fileName string) (string, error) {
	key := fileName + "\x00" + source

	h.mu.Lock()
	cached, ok := h.cache[key]
	h.mu.Unlock()
	if ok {
		return cached, nil
	}

	lexer := lexers.Match(fileName)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	tokens, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, tokens); err != nil {
		return "", err
	}

	out := buf.String()
	h.mu.Lock()
	h.cache[key] = out
	h.mu.Unlock()
	return out, nil
}

// CSS returns the stylesheet for the highlighter's classes.
func (h *Highlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		return "", err
	}
	return sb.String(), nil
}
