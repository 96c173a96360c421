package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/geowatch/internal/pkg/metrics"
)

// wsMessage is sent from client to narrow or widen which views it follows.
type wsMessage struct {
	Action string `json:"action"` // "subscribe" | "unsubscribe"
	View   string `json:"view"`   // "dashboard" | "archive" | "public" ("" = all)
}

// WebSocketHandler upgrades to WebSocket and relays view refresh events so
// open pages bump their refresh key without polling. Clients start following
// every view and send {"action":"subscribe","view":"archive"} to narrow.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		subject := func(view string) string {
			if view == "" {
				return "geowatch.refresh.>"
			}
			return "geowatch.refresh." + view
		}

		// Follow every view by default.
		defaultSubject := subject("")
		sub, err := nc.Subscribe(defaultSubject, func(msg *nats.Msg) {
			_ = writeJSON(json.RawMessage(msg.Data))
		})
		if err != nil {
			slog.Warn("ws default subscribe error", "error", err)
			return
		}
		subs[defaultSubject] = sub

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.View {
			case "", "dashboard", "archive", "public":
			default:
				_ = writeJSON(map[string]string{"error": "unknown view: " + m.View})
				continue
			}
			subj := subject(m.View)

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subj]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "view": m.View})
					continue
				}
				s, err := nc.Subscribe(subj, func(msg *nats.Msg) {
					_ = writeJSON(json.RawMessage(msg.Data))
				})
				if err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				subs[subj] = s
				_ = writeJSON(map[string]string{"status": "subscribed", "view": m.View})

			case "unsubscribe":
				if s, exists := subs[subj]; exists {
					_ = s.Unsubscribe()
					delete(subs, subj)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "view": m.View})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + m.View})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
