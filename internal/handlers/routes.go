package handlers

import (
	"net/http"
	"time"

	"playtracker/internal/ratelimit"
	"playtracker/internal/service"
)

// Services bundles what the router needs
type Services struct {
	Children     *service.ChildService
	Games        *service.GameService
	Sessions     *service.SessionService
	LiveInterval time.Duration

	// Limiter throttles write routes per client; nil disables it
	Limiter *ratelimit.Limiter
}

// NewRouter registers every route and wraps the mux in the logging middleware
func NewRouter(s Services) http.Handler {
	mux := http.NewServeMux()

	children := NewChildHandler(s.Children)
	games := NewGameHandler(s.Games)
	sessions := NewSessionHandler(s.Sessions)
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimit(s.Limiter, h)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	mux.HandleFunc("GET /api/children", children.ListChildren)
	mux.HandleFunc("POST /api/children", write(children.CreateChild))
	mux.HandleFunc("GET /api/children/{id}", children.GetChild)
	mux.HandleFunc("PUT /api/children/{id}", write(children.UpdateChild))
	mux.HandleFunc("DELETE /api/children/{id}", write(children.DeleteChild))

	mux.HandleFunc("GET /api/games", games.ListGames)
	mux.HandleFunc("POST /api/games", write(games.CreateGame))
	mux.HandleFunc("DELETE /api/games/{id}", write(games.DeleteGame))

	mux.HandleFunc("POST /api/sessions/start", write(sessions.StartSession))
	mux.HandleFunc("POST /api/sessions/extend", write(sessions.ExtendSession))
	mux.HandleFunc("POST /api/sessions/end", write(sessions.EndSession))
	mux.HandleFunc("POST /api/sessions/{id}/end", write(sessions.EndSessionByPath))
	mux.HandleFunc("GET /api/sessions/active", sessions.ListActive)
	mux.HandleFunc("GET /api/sessions/history", sessions.ListHistory)
	mux.Handle("GET /api/sessions/live", NewLiveHandler(s.Sessions, s.LiveInterval))
	mux.HandleFunc("GET /api/sessions/{id}", sessions.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", write(sessions.DeleteSession))

	return Logging(mux)
}
