// Package api exposes the game session over HTTP: read-only state for the
// renderer/HUD, intent endpoints for the input layer, and a websocket
// stream of live state.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/game"
)

// Server serves one game session.
type Server struct {
	Session *game.Session
	Port    int

	// OnMutate, when set, is invoked after every successful mutating
	// intent — the explicit save point that bounds data loss between
	// autosaves. Must not block.
	OnMutate func()

	hub *Hub
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.hub = NewHub()
	go s.hub.Run()

	// Intents are cheap, but nothing legitimate sends thousands per
	// minute from one address.
	intents := NewRateLimiter(600, time.Minute)

	mux := http.NewServeMux()

	// Read-only state.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("/api/v1/economy", s.handleEconomy)

	// Live state push.
	mux.HandleFunc("/api/v1/live", s.hub.serveLive)

	// Mutating intents.
	mux.HandleFunc("/api/v1/intent/", RateLimitMiddleware(intents, s.handleIntent))
	mux.HandleFunc("/api/v1/identity", RateLimitMiddleware(intents, s.handleIdentity))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// PushState broadcasts the current render state to live clients. Called
// after successful intents and from the engine's periodic layers.
func (s *Server) PushState() {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(s.Session.RenderState())
	if err != nil {
		slog.Error("render state encode failed", "error", err)
		return
	}
	s.hub.Broadcast(payload)
}

// corsMiddleware allows localhost dev frontends plus any origins listed in
// CORS_ORIGINS (comma-separated).
func corsMiddleware(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	p := s.Session.Progress()
	e := s.Session.Economy()
	writeJSON(w, map[string]any{
		"name":         "isle-city",
		"player":       p.PlayerName,
		"level":        p.Level,
		"coins":        p.Coins,
		"coins_pretty": humanize.Comma(p.Coins),
		"xp":           p.SpendableXP,
		"housing":      e.TotalHousing,
		"free_workers": e.FreeWorkers,
		"income":       e.IncomePerTick,
		"hour":         s.Session.Hour(),
		"is_night":     s.Session.IsNight(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.RenderState())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	defs := s.Session.Catalog().All()
	if cat := r.URL.Query().Get("category"); cat != "" {
		defs = s.Session.Catalog().ByCategory(catalog.Category(cat))
	}
	writeJSON(w, defs)
}

func (s *Server) handleEconomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Economy())
}

// intentRequest is the union of all intent payloads; each intent reads the
// fields it cares about.
type intentRequest struct {
	Category string `json:"category"`
	DefID    string `json:"def_id"`
	ID       string `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	XP       int64  `json:"xp"`
	Amount   int64  `json:"amount"`
	Name     string `json:"name"`
}

// handleIntent dispatches POST /api/v1/intent/<name>. Gameplay refusals
// come back as 200 with ok=false and a reason code; they are expected
// feedback, not protocol errors.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/v1/intent/")

	var req intentRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}

	var res game.Result
	switch name {
	case "select-category":
		s.Session.SelectCategory(catalog.Category(req.Category))
		res = game.Result{OK: true}
	case "select-building":
		res = s.Session.SelectBuildingDef(req.DefID)
	case "ghost":
		res = s.Session.SetGhostPosition(req.X, req.Y)
	case "confirm":
		res = s.Session.ConfirmBuilding()
	case "cancel":
		s.Session.CancelBuilding()
		res = game.Result{OK: true}
	case "select-instance":
		res = s.Session.SelectInstance(req.ID)
	case "move":
		res = s.Session.StartMoveInstance(req.ID)
	case "upgrade":
		res = s.Session.UpgradeInstance(req.ID)
	case "destroy":
		res = s.Session.DestroyInstance(req.ID)
	case "exchange":
		res = s.Session.ExchangeXPForCoins(req.XP)
	case "name":
		s.Session.UpdatePlayerName(req.Name)
		res = game.Result{OK: true}
	case "coins":
		s.Session.AddCoins(req.Amount)
		res = game.Result{OK: true}
	case "close-notification":
		s.Session.CloseNotification()
		res = game.Result{OK: true}
	default:
		http.Error(w, "unknown intent", http.StatusNotFound)
		return
	}

	if res.OK {
		s.PushState()
		if s.OnMutate != nil {
			s.OnMutate()
		}
	}
	writeJSON(w, res)
}

// handleIdentity consumes the host platform's one-shot identity event:
// player id, display name, and whether the player arrived via referral.
func (s *Server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		PlayerID string `json:"player_id"`
		Name     string `json:"name"`
		Referred bool   `json:"referred"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.Session.ApplyIdentity(req.PlayerID, req.Name, req.Referred)
	s.PushState()
	if s.OnMutate != nil {
		s.OnMutate()
	}
	writeJSON(w, game.Result{OK: true})
}
