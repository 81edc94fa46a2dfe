package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/devlink-app/devlink-backend/internal/middleware"
	"github.com/devlink-app/devlink-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// FeedHandler streams post and comment events to websocket clients.
type FeedHandler struct {
	feed   *services.FeedService
	tokens *services.TokenService
}

func NewFeedHandler(feed *services.FeedService, tokens *services.TokenService) *FeedHandler {
	return &FeedHandler{feed: feed, tokens: tokens}
}

// Feed handles GET /ws/feed. Authentication uses the session token, taken
// from the Authorization header or, for browser WebSocket clients, the
// `token` query parameter.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	if _, err := h.tokens.Verify(token); err != nil {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})

	// Writer: forward hub events to this connection.
	go func() {
		defer close(done)
		for evt := range events {
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}()

	// Reader: clients send nothing meaningful; keep the connection alive on
	// pongs and drop it when it goes quiet.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		select {
		case <-done:
			return
		default:
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
