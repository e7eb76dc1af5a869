package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/conneroisu/panelkit/internal/blocks"
	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/conneroisu/panelkit/internal/pages"
	"github.com/conneroisu/panelkit/internal/ui"
	"github.com/conneroisu/panelkit/internal/version"
)

func (s *Server) page(title string, main templ.Component, opts ...func(*templ.ComponentHandler)) http.Handler {
	return templ.Handler(pages.Site(title, s.liveReload(), main), opts...)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, err error) {
	s.page("Not found", pages.NotFound(err.Error()), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r, perrors.ErrPageNotFound(r.URL.Path))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.page("", pages.Index(s.registry.All(), s.library.All())).ServeHTTP(w, r)
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	page, err := s.library.Get(r.PathValue("slug"))
	if err != nil {
		if !perrors.IsNotFound(err) {
			requestLogger(r.Context(), s.logger).Error(r.Context(), err, "Failed to load docs page")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		s.notFound(w, r, err)
		return
	}
	s.page(page.Title, pages.Docs(page, s.library.All())).ServeHTTP(w, r)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	block, err := s.registry.Get(r.PathValue("name"))
	if err != nil {
		s.notFound(w, r, err)
		return
	}

	tab := pages.ParseTab(r.URL.Query().Get("tab"))
	var source string
	if tab == pages.TabCode {
		if source, err = s.blockSource(block); err != nil {
			requestLogger(r.Context(), s.logger).Error(r.Context(), err, "Failed to render block source", "block", block.Name)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}
	s.page(block.DisplayTitle(), pages.Viewer(block, tab, source)).ServeHTTP(w, r)
}

func (s *Server) blockSource(block *blocks.Block) (string, error) {
	src, err := block.Source()
	if err != nil {
		return "", err
	}
	return s.highlighter.Highlight(src, block.SourceFile)
}

// handleView renders a block as a whole page. The cookie is decoded before
// rendering, so the first paint already has the visitor's layout.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	block, err := s.registry.Get(r.PathValue("name"))
	if err != nil {
		s.notFound(w, r, err)
		return
	}

	provider := s.session(w, r, block.Defaults)
	ctx := layout.WithProvider(r.Context(), provider)

	doc := ui.Document(ui.DocumentOptions{
		Title:      block.DisplayTitle(),
		LiveReload: s.liveReload(),
		Frame:      true,
	}, pages.View(block))
	templ.Handler(doc).ServeHTTP(w, r.WithContext(ctx))
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	css, err := s.highlighter.CSS()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(css))
}

// blockSummary is the JSON shape of a block in /api/blocks.
type blockSummary struct {
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	IframeHeight int            `json:"iframe_height"`
	URL          string         `json:"url"`
	Group        string         `json:"group"`
	Panels       []panelSummary `json:"panels"`
}

type panelSummary struct {
	ID          string  `json:"id"`
	Side        string  `json:"side"`
	MinSize     float64 `json:"min_size"`
	DefaultSize float64 `json:"default_size"`
	MaxSize     float64 `json:"max_size"`
	DefaultOpen bool    `json:"default_open"`
}

func summarize(b *blocks.Block) blockSummary {
	summary := blockSummary{
		Name:         b.Name,
		Title:        b.DisplayTitle(),
		Description:  b.Description,
		IframeHeight: b.Height(),
		URL:          pages.ViewPath(b.Name),
		Group:        b.Group.Key,
		Panels:       []panelSummary{},
	}
	for _, p := range b.Group.Panels() {
		summary.Panels = append(summary.Panels, panelSummary{
			ID:          p.ID,
			Side:        string(p.Side),
			MinSize:     p.MinSize,
			DefaultSize: p.DefaultSize,
			MaxSize:     p.MaxSize,
			DefaultOpen: b.Defaults[p.ID],
		})
	}
	return summary
}

func (s *Server) handleBlocksAPI(w http.ResponseWriter, r *http.Request) {
	all := s.registry.All()
	out := make([]blockSummary, 0, len(all))
	for _, b := range all {
		out = append(out, summarize(b))
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"version":    info.Short(),
		"build_info": info,
		"checks": map[string]interface{}{
			"blocks":      map[string]interface{}{"status": "healthy", "count": s.registry.Count()},
			"docs":        map[string]interface{}{"status": "healthy", "pages": s.library.Len()},
			"live_reload": map[string]interface{}{"enabled": s.liveReload(), "clients": s.ClientCount()},
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r.Context(), s.logger).Warn(r.Context(), err, "Failed to encode response")
	}
}

// errorResponse is the JSON body of a failed API call.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var pe *perrors.PanelkitError
	if errors.As(err, &pe) {
		resp.Error = pe.Message
		resp.Code = pe.Code
	}
	s.writeJSON(w, r, status, resp)
}
