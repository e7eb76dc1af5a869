package docs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/logging"
)

// Library holds the parsed pages of a content directory. Reload swaps the
// whole set at once, so readers never see a half loaded library.
type Library struct {
	fsys   fs.FS
	logger logging.Logger

	mu    sync.RWMutex
	pages map[string]*Page
	order []*Page
}

// NewLibrary creates a library reading markdown from dir. Nothing is loaded
// until Reload.
func NewLibrary(dir string, logger logging.Logger) *Library {
	return NewLibraryFS(os.DirFS(dir), logger)
}

// NewLibraryFS creates a library over any file system.
func NewLibraryFS(fsys fs.FS, logger logging.Logger) *Library {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Library{
		fsys:   fsys,
		logger: logger.WithComponent("docs"),
		pages:  make(map[string]*Page),
	}
}

// Reload parses every .md file. A missing content directory yields an empty
// library. A page that fails to parse is skipped with a warning and the rest
// still load.
func (l *Library) Reload(ctx context.Context) error {
	pages := make(map[string]*Page)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != ".md" {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(p, ".md")
		page, err := Parse(slug, data)
		if err != nil {
			l.logger.Warn(ctx, err, "Skipping docs page", "path", p)
			return nil
		}
		pages[slug] = page
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	order := make([]*Page, 0, len(pages))
	for _, page := range pages {
		order = append(order, page)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Order != order[j].Order {
			return order[i].Order < order[j].Order
		}
		return order[i].Slug < order[j].Slug
	})

	l.mu.Lock()
	l.pages = pages
	l.order = order
	l.mu.Unlock()

	l.logger.Info(ctx, "Loaded docs", "pages", len(order))
	return nil
}

// Get returns the page for slug. A trailing slash or "index" suffix is
// ignored.
func (l *Library) Get(slug string) (*Page, error) {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		slug = "index"
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if page, ok := l.pages[slug]; ok {
		return page, nil
	}
	if page, ok := l.pages[slug+"/index"]; ok {
		return page, nil
	}
	return nil, perrors.ErrPageNotFound(slug)
}

// All returns the pages in navigation order.
func (l *Library) All() []*Page {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]*Page(nil), l.order...)
}

// Len returns the number of loaded pages.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.order)
}
