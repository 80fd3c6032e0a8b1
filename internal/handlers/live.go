package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"playtracker/internal/service"
)

const (
	liveReadTimeout  = 60 * time.Second
	livePingInterval = 30 * time.Second
	liveWriteTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

// LiveHandler pushes the active session projection to websocket clients
type LiveHandler struct {
	sessions *service.SessionService
	interval time.Duration
	now      func() time.Time
}

// NewLiveHandler creates a live feed that refreshes every interval
func NewLiveHandler(sessions *service.SessionService, interval time.Duration) *LiveHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &LiveHandler{sessions: sessions, interval: interval, now: time.Now}
}

// ServeHTTP upgrades the connection and streams snapshots until the client leaves
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Live feed upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Live feed read error: %v", err)
				}
				return
			}
		}
	}()

	snapshots := time.NewTicker(h.interval)
	defer snapshots.Stop()
	pings := time.NewTicker(livePingInterval)
	defer pings.Stop()

	ctx := r.Context()
	if !h.push(ctx, conn) {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pings.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteTimeout)); err != nil {
				return
			}
		case <-snapshots.C:
			if !h.push(ctx, conn) {
				return
			}
		}
	}
}

// push writes one snapshot and reports whether the connection is still usable
func (h *LiveHandler) push(ctx context.Context, conn *websocket.Conn) bool {
	views, err := h.sessions.ListActiveViews(ctx, h.now())
	if err != nil {
		log.Printf("Live feed snapshot failed: %v", err)
		return true
	}

	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteJSON(views); err != nil {
		log.Printf("Live feed write failed: %v", err)
		return false
	}
	return true
}
