// Package ui renders the layout primitives and shared page chrome as templ
// components.
//
// Components are built with templ.ComponentFunc rather than generated from
// .templ files. Every string that reaches the output goes through
// templ.EscapeString unless it is already trusted markup.
package ui

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Writer writes markup and keeps the first error, so a component can emit a
// run of elements and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (w *Writer) Raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// BoolAttr writes ` name` when set.
func (w *Writer) BoolAttr(name string, set bool) {
	if set {
		w.Raw(" " + name)
	}
}

// Classes writes a class attribute built with templ.Classes, skipping it when
// nothing is set.
func (w *Writer) Classes(classes ...any) {
	if s := templ.Classes(classes...).String(); s != "" {
		w.Attr("class", s)
	}
}

// Href writes an href for a sanitized URL.
func (w *Writer) Href(url templ.SafeURL) {
	w.Attr("href", string(url))
}

// Component renders c in place. A nil component writes nothing.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

// Element writes <tag attrs>text</tag> where attrs alternate name and value.
func (w *Writer) Element(tag, text string, attrs ...string) {
	w.Raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.Attr(attrs[i], attrs[i+1])
	}
	w.Raw(">")
	w.Text(text)
	w.Raw("</" + tag + ">")
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Percent formats a size for flex and data attributes.
func Percent(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}
