package layout

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// session builds the per-request provider the server uses.
func session(t *testing.T, cookie string, defaults map[string]bool) (*httptest.ResponseRecorder, *CookieSession, *Provider) {
	t.Helper()
	w := httptest.NewRecorder()
	s := NewCookieSession(w, requestWithCookie(cookie), DefaultCookieOptions(), logging.Nop())
	record := s.Record()
	p := NewProvider(record.PanelStates(defaults), s, WithLayouts(record.Groups))
	return w, s, p
}

func TestFreshSessionNavScenario(t *testing.T) {
	w, s, p := session(t, "", map[string]bool{"nav": false})
	ctx := WithProvider(t.Context(), p)
	group := navGroup()

	placements := group.Arrange(ctx)
	assert.Equal(t, 0.0, placements[0].Size, "nav starts collapsed")
	assert.Equal(t, 100.0, placements[1].Size)
	assert.Equal(t, 0, s.Writes(), "rendering writes nothing")

	assert.True(t, NewTrigger(ctx, "nav").Activate(ctx))
	assert.True(t, p.IsOpen("nav"))

	placements = group.Arrange(ctx)
	assert.Equal(t, 25.0, placements[0].Size, "nav opens at its declared default")
	assert.Equal(t, 75.0, placements[1].Size)

	c := responseCookie(t, w, DefaultCookieOptions().Name)
	decoded, err := Decode(c.Value)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"nav": true}, decoded.Panels)
}

func TestRoundTripHasNoFlashOfDefaults(t *testing.T) {
	group := NewGroup("dashboard", Horizontal,
		PanelRegion("sidebar", SideLeft).WithSizes(20, 25, 35),
		ContentRegion(""),
	).WithInitial(25, 75)

	// First visit: open the sidebar and drag it to 30%.
	w, _, p := session(t, "", nil)
	ctx := WithProvider(t.Context(), p)
	NewOpenAction(ctx, "sidebar").Activate(ctx)
	require.NoError(t, group.Settle(ctx, []float64{30, 70}))

	persisted := responseCookie(t, w, DefaultCookieOptions().Name).Value

	// Reload with the persisted cookie as the only seed.
	_, s, p := session(t, persisted, map[string]bool{"sidebar": false})
	ctx = WithProvider(t.Context(), p)

	assert.True(t, p.IsOpen("sidebar"), "the persisted flag wins over the default")
	placements := group.Arrange(ctx)
	assert.True(t, placements[0].Open)
	assert.Equal(t, 30.0, placements[0].Size)
	assert.Equal(t, 70.0, placements[1].Size)
	assert.Equal(t, 0, s.Writes())
}

func TestMalformedCookieFallsBackToDefaults(t *testing.T) {
	_, _, p := session(t, "v=1&p=%zz", map[string]bool{"left": true})
	ctx := WithProvider(t.Context(), p)

	group := NewGroup("g", Horizontal, PanelRegion("left", SideLeft), ContentRegion("")).WithInitial(25, 75)
	placements := group.Arrange(ctx)

	assert.True(t, placements[0].Open)
	assert.Equal(t, 25.0, placements[0].Size)
}

func TestPanelStatesOfOtherPagesSurviveWrites(t *testing.T) {
	seed := Encode(Record{Panels: map[string]bool{"other-page": true}})
	w, _, p := session(t, seed, map[string]bool{"nav": false})
	ctx := WithProvider(t.Context(), p)

	p.Toggle(ctx, "nav")

	decoded, err := Decode(responseCookie(t, w, DefaultCookieOptions().Name).Value)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"nav": true, "other-page": true}, decoded.Panels)
}

func TestCookieWriteFailureKeepsSessionState(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	opts := DefaultCookieOptions()
	opts.Name = "bad name"
	s := NewCookieSession(w, r, opts, nil)
	p := NewProvider(nil, s)
	ctx := WithProvider(t.Context(), p)

	assert.True(t, NewTrigger(ctx, "nav").Activate(ctx))
	assert.True(t, p.IsOpen("nav"))
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}
