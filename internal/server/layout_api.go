package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/layout"
)

// maxSettleBody caps the JSON body of a group settle request.
const maxSettleBody = 4 << 10

// layoutResponse is the persisted layout as the API reports it.
type layoutResponse struct {
	Panels map[string]bool              `json:"panels"`
	Groups map[string]layout.GroupSizes `json:"groups"`
}

// panelActionResponse reports a panel's state after an action.
type panelActionResponse struct {
	ID     string          `json:"id"`
	Open   bool            `json:"open"`
	Panels map[string]bool `json:"panels"`
}

// settleRequest is the body of POST /api/layout/groups/{key}.
type settleRequest struct {
	IDs   []string  `json:"ids"`
	Sizes []float64 `json:"sizes"`
}

// handleLayoutAPI reports what the visitor's cookie holds. A malformed
// cookie reads as an empty layout.
func (s *Server) handleLayoutAPI(w http.ResponseWriter, r *http.Request) {
	record, err := layout.ReadRecord(r, s.cookieOptions())
	if err != nil {
		requestLogger(r.Context(), s.logger).Debug(r.Context(), "Ignoring malformed layout cookie", "error", err.Error())
	}

	resp := layoutResponse{Panels: record.Panels, Groups: record.Groups}
	if resp.Panels == nil {
		resp.Panels = map[string]bool{}
	}
	if resp.Groups == nil {
		resp.Groups = map[string]layout.GroupSizes{}
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// handlePanelAction runs a toggle, open or close action against the
// visitor's panel states. Script clients get JSON; plain form posts are
// redirected back to the page they came from.
func (s *Server) handlePanelAction(w http.ResponseWriter, r *http.Request) {
	kind, err := layout.ParseActionKind(r.PathValue("action"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		s.writeError(w, r, http.StatusBadRequest, perrors.ErrInvalidPanel(id))
		return
	}

	defaults := s.registry.PanelDefaults()
	if _, ok := defaults[id]; !ok {
		s.writeError(w, r, http.StatusNotFound, perrors.ErrPanelNotFound(id))
		return
	}

	provider := s.session(w, r, defaults)
	ctx := layout.WithProvider(r.Context(), provider)

	action, err := layout.NewAction(ctx, kind, id)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	open := action.Activate(ctx)
	requestLogger(ctx, s.logger).Debug(ctx, "Panel action", "panel", id, "action", string(kind), "open", open)

	if !wantsJSON(r) {
		http.Redirect(w, r, backPath(r), http.StatusSeeOther)
		return
	}
	s.writeJSON(w, r, http.StatusOK, panelActionResponse{
		ID:     id,
		Open:   open,
		Panels: provider.Panels(),
	})
}

// handleGroupSettle stores the size vector a drag ended on.
func (s *Server) handleGroupSettle(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	group, ok := s.registry.Group(key)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, perrors.NewValidationError(perrors.ErrCodeInvalidLayout, "unknown group: "+key))
		return
	}

	var req settleRequest
	body := http.MaxBytesReader(w, r.Body, maxSettleBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, perrors.ErrMalformedRequest(err))
		return
	}

	sizes, err := orderSizes(group, req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	provider := s.session(w, r, s.registry.PanelDefaults())
	ctx := layout.WithProvider(r.Context(), provider)
	if err := group.Settle(ctx, sizes); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, layout.GroupSizes{IDs: group.SizedIDs(), Sizes: sizes})
}

// orderSizes lines the posted sizes up with the group's live regions. When
// the client names its regions the sizes are matched by id, otherwise they
// are taken in order.
func orderSizes(group *layout.Group, req settleRequest) ([]float64, error) {
	if len(req.IDs) == 0 {
		return req.Sizes, nil
	}
	if len(req.IDs) != len(req.Sizes) {
		return nil, perrors.NewValidationError(perrors.ErrCodeInvalidLayout, "ids and sizes differ in length")
	}
	posted := layout.GroupSizes{IDs: req.IDs, Sizes: req.Sizes}
	ids := group.SizedIDs()
	out := make([]float64, len(ids))
	for i, id := range ids {
		size, ok := posted.SizeFor(id)
		if !ok {
			return nil, perrors.ErrInvalidPanel(id).WithContext("group", group.Key)
		}
		out[i] = size
	}
	return out, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// backPath returns the same-origin path of the Referer, or "/".
func backPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
