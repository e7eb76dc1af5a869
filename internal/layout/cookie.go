package layout

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/logging"
)

// MaxCookieSize is the largest Set-Cookie value browsers are required to keep.
const MaxCookieSize = 4096

// CookieOptions configures the layout cookie.
type CookieOptions struct {
	Name     string
	Path     string
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions returns options for a one year, site-wide, lax cookie.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Name:     "resizable-layout",
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
	}
}

// ReadRecord decodes the layout cookie from r. A missing cookie yields an
// empty record and no error; a malformed one yields an empty record and the
// decode error so the caller can log it.
func ReadRecord(r *http.Request, opts CookieOptions) (Record, error) {
	cookie, err := r.Cookie(opts.Name)
	if err != nil {
		return NewRecord(), nil
	}
	record, err := Decode(cookie.Value)
	if err != nil {
		return NewRecord(), perrors.NewPersistenceError(perrors.ErrCodeCookieMalformed, "malformed layout cookie", err)
	}
	return record, nil
}

// Persister durably records layout changes. Implementations are called
// synchronously after a state change has been applied; a returned error is
// logged and otherwise ignored.
type Persister interface {
	PersistPanels(ctx context.Context, panels map[string]bool) error
	PersistGroup(ctx context.Context, key string, sizes GroupSizes) error
}

// CookieSession is the request-scoped Persister backed by the layout cookie.
// It keeps the full record so that a panel write keeps the group sizes and a
// group write keeps the panel flags.
type CookieSession struct {
	mu     sync.Mutex
	opts   CookieOptions
	w      http.ResponseWriter
	record Record
	writes int
}

// NewCookieSession reads the layout cookie from r. Malformed cookies are
// logged at debug level and treated as absent.
func NewCookieSession(w http.ResponseWriter, r *http.Request, opts CookieOptions, logger logging.Logger) *CookieSession {
	record, err := ReadRecord(r, opts)
	if err != nil && logger != nil {
		logger.Debug(r.Context(), "ignoring layout cookie", "error", err.Error())
	}
	return &CookieSession{
		opts:   opts,
		w:      w,
		record: record,
	}
}

// Record returns a copy of the session's current record.
func (s *CookieSession) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Writes reports how many times the cookie has been written.
func (s *CookieSession) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// PersistPanels replaces the panel map and rewrites the cookie.
func (s *CookieSession) PersistPanels(_ context.Context, panels map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.record.Clone()
	next.Panels = make(map[string]bool, len(panels))
	maps.Copy(next.Panels, panels)
	return s.writeLocked(next)
}

// PersistGroup replaces one group's sizes and rewrites the cookie.
func (s *CookieSession) PersistGroup(_ context.Context, key string, sizes GroupSizes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.record.Clone()
	next.Groups[key] = sizes.Clone()
	return s.writeLocked(next)
}

// writeLocked encodes next and, when it fits in a cookie, makes it the
// session's record.
func (s *CookieSession) writeLocked(next Record) error {
	value := Encode(next)
	if len(s.opts.Name)+len(value)+1 > MaxCookieSize {
		return perrors.NewPersistenceError(perrors.ErrCodeCookieTooLarge, "layout cookie too large",
			fmt.Errorf("%d bytes", len(value)))
	}

	cookie := &http.Cookie{
		Name:     s.opts.Name,
		Value:    value,
		Path:     s.opts.Path,
		MaxAge:   s.opts.MaxAge,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	}
	if err := cookie.Valid(); err != nil {
		return perrors.NewPersistenceError(perrors.ErrCodeCookieMalformed, "invalid layout cookie", err)
	}

	replaceCookie(s.w.Header(), cookie)
	s.record = next
	s.writes++
	return nil
}

// replaceCookie sets cookie, dropping any Set-Cookie for the same name that
// an earlier write in this response added. Browsers apply the last header,
// but one header per name keeps responses readable.
func replaceCookie(h http.Header, cookie *http.Cookie) {
	prefix := cookie.Name + "="
	existing := h.Values("Set-Cookie")
	kept := existing[:0:0]
	for _, v := range existing {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	h.Add("Set-Cookie", cookie.String())
}
