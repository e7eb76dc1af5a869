// Package server serves the docs site, the block gallery and the layout
// API that persists panel state in the visitor's cookie.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/conneroisu/panelkit/internal/blocks"
	"github.com/conneroisu/panelkit/internal/config"
	"github.com/conneroisu/panelkit/internal/docs"
	"github.com/conneroisu/panelkit/internal/highlight"
	"github.com/conneroisu/panelkit/internal/layout"
	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/conneroisu/panelkit/internal/ui"
	"github.com/conneroisu/panelkit/internal/watcher"
)

// Server serves panelkit over HTTP.
type Server struct {
	config      *config.Config
	logger      logging.Logger
	registry    *blocks.Registry
	library     *docs.Library
	highlighter *highlight.Highlighter

	httpServer  *http.Server
	serverMutex sync.RWMutex
	watcher     *watcher.FileWatcher

	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn

	shutdownOnce sync.Once
	done         chan struct{}
}

// UpdateMessage is sent to connected browsers.
type UpdateMessage struct {
	Type      string    `json:"type"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry replaces the built-in block registry.
func WithRegistry(r *blocks.Registry) Option {
	return func(s *Server) { s.registry = r }
}

// WithLibrary replaces the docs library read from the content directory.
func WithLibrary(l *docs.Library) Option {
	return func(s *Server) { s.library = l }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server. Docs are not loaded until Start, or until the
// caller reloads the library itself.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		config:      cfg,
		logger:      logging.Nop(),
		highlighter: highlight.New(highlight.DefaultStyle),
		clients:     make(map[*websocket.Conn]*Client),
		broadcast:   make(chan []byte, 16),
		register:    make(chan *Client),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("server")
	if s.registry == nil {
		s.registry = blocks.Builtin()
	}
	if s.library == nil {
		s.library = docs.NewLibrary(cfg.Docs.ContentDir, s.logger)
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
}

// Start loads the docs, starts hot reload when enabled and serves until the
// server is shut down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.library.Reload(ctx); err != nil {
		s.logger.Warn(ctx, err, "Failed to load docs", "dir", s.config.Docs.ContentDir)
	}

	if s.liveReload() {
		if err := s.startWatcher(ctx); err != nil {
			s.logger.Warn(ctx, err, "Hot reload disabled")
		}
	}

	go s.runWebSocketHub(ctx)

	listener, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	url := "http://" + listener.Addr().String()
	s.logger.Info(ctx, "Serving", "url", url, "blocks", s.registry.Count(), "docs", s.library.Len())
	if s.config.Server.Open {
		go s.openBrowser(ctx, url)
	}

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /docs/{slug...}", s.handleDocs)
	mux.HandleFunc("GET /blocks/{name}", s.handleBlock)
	mux.HandleFunc("GET /view/{name}", s.handleView)
	mux.HandleFunc("GET /api/blocks", s.handleBlocksAPI)
	mux.HandleFunc("GET /api/layout", s.handleLayoutAPI)
	mux.HandleFunc("POST /api/layout/panels/{id}/{action}", s.handlePanelAction)
	mux.HandleFunc("POST /api/layout/groups/{key}", s.handleGroupSettle)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/highlight.css", s.handleHighlightCSS)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(ui.Static())))
	mux.HandleFunc("/", s.handleNotFound)

	return s.addMiddleware(mux)
}

func (s *Server) liveReload() bool {
	return s.config.IsDevelopment() && s.config.Development.HotReload
}

func (s *Server) cookieOptions() layout.CookieOptions {
	return layout.CookieOptions{
		Name:     s.config.Layout.CookieName,
		Path:     s.config.Layout.CookiePath,
		MaxAge:   s.config.Layout.CookieMaxAge,
		Secure:   s.config.Layout.CookieSecure,
		SameSite: s.config.Layout.SameSiteMode(),
	}
}

// session decodes the request's layout cookie into a fresh Provider whose
// writes go back out as Set-Cookie on w.
func (s *Server) session(w http.ResponseWriter, r *http.Request, defaults map[string]bool) *layout.Provider {
	logger := requestLogger(r.Context(), s.logger)
	session := layout.NewCookieSession(w, r, s.cookieOptions(), logger)
	record := session.Record()
	return layout.NewProvider(record.PanelStates(defaults), session,
		layout.WithLayouts(record.Groups),
		layout.WithLogger(logger),
		layout.WithDevelopment(s.config.IsDevelopment()),
	)
}

func (s *Server) startWatcher(ctx context.Context) error {
	fw, err := watcher.New(watcher.DefaultDelay, s.logger)
	if err != nil {
		return err
	}
	fw.AddFilter(watcher.MarkdownFilter)
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddHandler(s.handleDocsChange)
	if err := fw.AddRecursive(s.config.Docs.ContentDir); err != nil {
		_ = fw.Stop()
		return err
	}
	fw.Start(ctx)
	s.watcher = fw
	return nil
}

func (s *Server) handleDocsChange(ctx context.Context, events []watcher.ChangeEvent) error {
	for _, event := range events {
		s.logger.Debug(ctx, "Docs changed", "path", event.Path, "type", event.Type.String())
	}
	if err := s.library.Reload(ctx); err != nil {
		return err
	}
	s.broadcastMessage(UpdateMessage{Type: "reload", Timestamp: time.Now()})
	return nil
}

func (s *Server) broadcastMessage(msg UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		data = []byte(`{"type":"reload"}`)
	}
	select {
	case s.broadcast <- data:
	case <-s.done:
	}
}

func (s *Server) openBrowser(ctx context.Context, url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	if err != nil {
		s.logger.Warn(ctx, err, "Failed to open browser", "url", url)
	}
}

// Shutdown stops the watcher, disconnects websocket clients and drains the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down server")
		close(s.done)

		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Failed to stop watcher")
			}
		}

		s.clientsMutex.Lock()
		for conn, client := range s.clients {
			close(client.send)
			conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})
	return shutdownErr
}
