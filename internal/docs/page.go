// Package docs loads the markdown documentation pages served under /docs/.
package docs

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Page is one rendered docs page.
type Page struct {
	Slug        string
	Title       string
	Description string
	// Order sorts the navigation; ties fall back to the slug.
	Order    int
	HTML     string
	Headings []Heading
}

// Heading is a section of a page, used for the on-page table of contents.
type Heading struct {
	Level int
	ID    string
	Text  string
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Parse renders a markdown document with optional yaml frontmatter.
func Parse(slug string, source []byte) (*Page, error) {
	meta, body, err := splitFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: frontmatter: %w", slug, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("%s: %w", slug, err)
	}

	page := &Page{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Order:       meta.Order,
		HTML:        buf.String(),
	}

	h1, headings, err := outline(buf.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", slug, err)
	}
	page.Headings = headings
	if page.Title == "" {
		page.Title = h1
	}
	if page.Title == "" {
		page.Title = titleFromSlug(slug)
	}
	return page, nil
}

func splitFrontmatter(source []byte) (frontmatter, []byte, error) {
	var meta frontmatter

	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return meta, normalized, nil
	}
	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return meta, normalized, nil
	}

	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return meta, nil, err
	}

	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return meta, body, nil
}

// outline returns the text of the first h1 and the h2/h3 headings.
func outline(rendered string) (string, []Heading, error) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", nil, err
	}

	var (
		h1       string
		headings []Heading
		walk     func(*html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if h1 == "" {
					h1 = nodeText(n)
				}
				return
			case "h2", "h3":
				headings = append(headings, Heading{
					Level: int(n.Data[1] - '0'),
					ID:    attr(n, "id"),
					Text:  nodeText(n),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return h1, headings, nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func titleFromSlug(slug string) string {
	base := path.Base(slug)
	if base == "index" && path.Dir(slug) != "." {
		base = path.Base(path.Dir(slug))
	}
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}
