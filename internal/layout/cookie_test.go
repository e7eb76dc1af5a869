package layout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrors "github.com/conneroisu/panelkit/internal/errors"
	"github.com/conneroisu/panelkit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: DefaultCookieOptions().Name, Value: value})
	}
	return r
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			require.Nil(t, found, "cookie %q set more than once", name)
			found = c
		}
	}
	require.NotNil(t, found, "cookie %q not set", name)
	return found
}

func TestReadRecord(t *testing.T) {
	opts := DefaultCookieOptions()

	record, err := ReadRecord(requestWithCookie(""), opts)
	assert.NoError(t, err)
	assert.True(t, record.IsEmpty())

	record, err = ReadRecord(requestWithCookie("v=1&p=nav%3A1"), opts)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"nav": true}, record.Panels)

	record, err = ReadRecord(requestWithCookie("garbage"), opts)
	assert.Error(t, err)
	assert.True(t, perrors.IsPersistenceError(err))
	assert.True(t, record.IsEmpty())
}

func TestCookieSessionPersistPanels(t *testing.T) {
	opts := DefaultCookieOptions()
	w := httptest.NewRecorder()
	session := NewCookieSession(w, requestWithCookie(""), opts, logging.Nop())

	require.NoError(t, session.PersistPanels(context.Background(), map[string]bool{"nav": true}))

	c := responseCookie(t, w, opts.Name)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, opts.MaxAge, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	decoded, err := Decode(c.Value)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"nav": true}, decoded.Panels)
	assert.Equal(t, 1, session.Writes())
}

func TestCookieSessionKeepsOtherHalfOfRecord(t *testing.T) {
	opts := DefaultCookieOptions()
	seed := Encode(Record{
		Panels: map[string]bool{"left": true},
		Groups: map[string]GroupSizes{"main": {IDs: []string{"left", "#1"}, Sizes: []float64{30, 70}}},
	})
	w := httptest.NewRecorder()
	session := NewCookieSession(w, requestWithCookie(seed), opts, logging.Nop())
	ctx := context.Background()

	require.NoError(t, session.PersistPanels(ctx, map[string]bool{"left": false}))
	require.NoError(t, session.PersistGroup(ctx, "other", GroupSizes{Sizes: []float64{50, 50}}))

	decoded, err := Decode(responseCookie(t, w, opts.Name).Value)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"left": false}, decoded.Panels)
	assert.Equal(t, []float64{30, 70}, decoded.Groups["main"].Sizes)
	assert.Equal(t, []float64{50, 50}, decoded.Groups["other"].Sizes)
	assert.Equal(t, 2, session.Writes())
}

func TestCookieSessionReplacesOnlyItsOwnHeader(t *testing.T) {
	opts := DefaultCookieOptions()
	w := httptest.NewRecorder()
	http.SetCookie(w, &http.Cookie{Name: "theme", Value: "dark"})
	session := NewCookieSession(w, requestWithCookie(""), opts, nil)
	ctx := context.Background()

	require.NoError(t, session.PersistPanels(ctx, map[string]bool{"a": true}))
	require.NoError(t, session.PersistPanels(ctx, map[string]bool{"a": false}))

	headers := w.Header().Values("Set-Cookie")
	require.Len(t, headers, 2)
	assert.True(t, strings.HasPrefix(headers[0], "theme="))
	assert.True(t, strings.HasPrefix(headers[1], opts.Name+"="))
}

func TestCookieSessionIgnoresMalformedCookie(t *testing.T) {
	session := NewCookieSession(httptest.NewRecorder(), requestWithCookie("v=9"), DefaultCookieOptions(), logging.Nop())
	assert.True(t, session.Record().IsEmpty())
}

func TestCookieSessionTooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	session := NewCookieSession(w, requestWithCookie(""), DefaultCookieOptions(), nil)

	panels := make(map[string]bool)
	for i := range 400 {
		panels[strings.Repeat("x", 8)+string(rune('a'+i%26))+strings.Repeat("y", i%7)+string(rune('A'+i/26))] = true
	}

	err := session.PersistPanels(context.Background(), panels)
	require.Error(t, err)
	assert.True(t, perrors.IsPersistenceError(err))
	assert.Empty(t, w.Header().Values("Set-Cookie"))
	assert.Equal(t, 0, session.Writes())
}

func TestCookieSessionRecordIsACopy(t *testing.T) {
	session := NewCookieSession(httptest.NewRecorder(), requestWithCookie("v=1&p=nav%3A1"), DefaultCookieOptions(), nil)

	r := session.Record()
	r.Panels["nav"] = false

	assert.True(t, session.Record().Panels["nav"])
}
