package server

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/coder/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client is one browser tab listening for reloads.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// checkOrigin above already matched the origin against the
		// configured hosts
		InsecureSkipVerify: true,
	})
	if err != nil {
		requestLogger(r.Context(), s.logger).Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 16),
		server: s,
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go client.writePump()
	client.readPump()
}

// checkOrigin accepts same-host origins and the configured allowed origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	if originURL.Host == r.Host || s.isAllowedOrigin(origin) {
		return true
	}

	allowedHosts := []string{
		s.Addr(),
		"localhost:" + strconv.Itoa(s.config.Server.Port),
		"127.0.0.1:" + strconv.Itoa(s.config.Server.Port),
	}
	return slices.Contains(allowedHosts, originURL.Host)
}

func (s *Server) isAllowedOrigin(origin string) bool {
	return origin != "" && slices.Contains(s.config.Server.AllowedOrigins, origin)
}

func (s *Server) runWebSocketHub(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return

		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.conn] = client
			count := len(s.clients)
			s.clientsMutex.Unlock()
			s.logger.Debug(ctx, "Reload client connected", "clients", count)

		case conn := <-s.unregister:
			s.clientsMutex.Lock()
			if client, ok := s.clients[conn]; ok {
				delete(s.clients, conn)
				close(client.send)
			}
			count := len(s.clients)
			s.clientsMutex.Unlock()
			s.logger.Debug(ctx, "Reload client disconnected", "clients", count)

		case message := <-s.broadcast:
			s.clientsMutex.Lock()
			for conn, client := range s.clients {
				select {
				case client.send <- message:
				default:
					delete(s.clients, conn)
					close(client.send)
					conn.Close(websocket.StatusPolicyViolation, "client too slow")
				}
			}
			s.clientsMutex.Unlock()
		}
	}
}

// ClientCount returns the number of connected reload clients.
func (s *Server) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// readPump discards client messages and unregisters the client once the
// connection goes away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c.conn:
		case <-c.server.done:
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.server.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
