package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

// FeedHandler streams submission events for a community over a websocket.
// It is a read-only projection for instructor dashboards.
type FeedHandler struct {
	feed     *app.SubmissionFeed
	upgrader websocket.Upgrader
}

func NewFeedHandler(feed *app.SubmissionFeed) *FeedHandler {
	return &FeedHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type feedMessage struct {
	Type    string                 `json:"type"`
	Payload domain.SubmissionEvent `json:"payload"`
}

// ServeFeed upgrades the request and forwards submission events until the
// client disconnects.
func (h *FeedHandler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("communityID")
	if communityID == "" {
		http.Error(w, "missing community id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.feed.Subscribe(communityID)
	defer cancel()

	done := make(chan struct{})

	// Reader goroutine: the feed is one-way, so inbound reads only notice
	// the peer closing.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: "submission", Payload: ev}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
