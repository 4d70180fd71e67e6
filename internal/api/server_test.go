package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/game"
	"github.com/talgya/isle-city/internal/world"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	grid := world.NewGrid(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			grid.Tiles[y][x] = world.Grass
		}
	}
	session := game.NewSession(catalog.Default(), &world.Island{Grid: grid})
	return &Server{Session: session, Port: 0}
}

func postIntent(t *testing.T, s *Server, intent, body string) game.Result {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intent/"+intent, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleIntent(w, req)
	require.Equal(t, http.StatusOK, w.Code, "intent %s: %s", intent, w.Body.String())

	var res game.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestStatusEndpoint(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	s.handleStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Mayor", body["player"])
	assert.Equal(t, float64(50000), body["coins"])
	assert.Equal(t, "50,000", body["coins_pretty"])
}

func TestStateEndpoint(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	w := httptest.NewRecorder()
	s.handleState(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var state game.RenderState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 20, state.Width)
	assert.Equal(t, game.ModeViewing, state.Mode)
	assert.Len(t, state.Tiles, 20)
}

func TestCatalogEndpoint(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	s.handleCatalog(w, req)

	var defs []catalog.Definition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	assert.Len(t, defs, 36)

	// Filtered by category.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?category=residential", nil)
	w = httptest.NewRecorder()
	s.handleCatalog(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	for _, d := range defs {
		assert.Equal(t, catalog.Residential, d.Category)
	}
}

func TestPlacementFlowOverHTTP(t *testing.T) {
	s := testServer(t)

	res := postIntent(t, s, "select-building", `{"def_id":"res_capsule"}`)
	require.True(t, res.OK)

	res = postIntent(t, s, "ghost", `{"x":3,"y":3}`)
	require.True(t, res.OK)

	res = postIntent(t, s, "confirm", "")
	require.True(t, res.OK)

	bs := s.Session.Buildings()
	require.Len(t, bs, 1)
	assert.Equal(t, "res_capsule", bs[0].DefID)
	assert.Equal(t, int64(49900), s.Session.Progress().Coins)
}

func TestOnMutateFiresOnSuccessOnly(t *testing.T) {
	s := testServer(t)
	var saves int
	s.OnMutate = func() { saves++ }

	postIntent(t, s, "select-building", `{"def_id":"res_capsule"}`)
	postIntent(t, s, "ghost", `{"x":3,"y":3}`)
	postIntent(t, s, "confirm", "")
	assert.Equal(t, 3, saves)

	// A refused intent is not a save point.
	res := postIntent(t, s, "upgrade", `{"id":"nope"}`)
	require.False(t, res.OK)
	assert.Equal(t, 3, saves)
}

func TestIntentRefusalIsOKFalse(t *testing.T) {
	s := testServer(t)
	res := postIntent(t, s, "upgrade", `{"id":"nope"}`)
	assert.False(t, res.OK)
	assert.Equal(t, game.ReasonMissingInstance, res.Reason)
}

func TestUnknownIntent404s(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intent/launch-rockets", nil)
	w := httptest.NewRecorder()
	s.handleIntent(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntentRejectsGet(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/intent/confirm", nil)
	w := httptest.NewRecorder()
	s.handleIntent(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestIntentRejectsBadJSON(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intent/ghost", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.handleIntent(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIdentityEndpoint(t *testing.T) {
	s := testServer(t)
	body := `{"player_id":"u-9","name":"Alex","referred":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identity", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleIdentity(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	p := s.Session.Progress()
	assert.Equal(t, "u-9", p.PlayerID)
	assert.Equal(t, "Alex", p.PlayerName)
	assert.Equal(t, int64(52500), p.Coins)
}

func TestCORSPreflight(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOriginGetsNoHeader(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d within budget", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.Greater(t, rl.RetryAfter("1.2.3.4"), 0)

	// Other addresses have their own buckets.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
