package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/services"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// streamHandlers bridges the refresh bus to a WebSocket: the client
// subscribes widgets by id and type, and refresh frames are pushed until it
// unsubscribes or disconnects.
type streamHandlers struct {
	RefreshBus *services.RefreshBus
	upgrader   websocket.Upgrader
}

func NewStreamHandlers(deps *Deps) *streamHandlers {
	return &streamHandlers{
		RefreshBus: deps.RefreshBus,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// streamCommand is a client→server control message.
type streamCommand struct {
	Action     string `json:"action"` // "subscribe" | "unsubscribe"
	WidgetID   string `json:"widgetId"`
	WidgetType string `json:"widgetType"`
}

func (h *streamHandlers) HandleLive(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Single writer goroutine; bus callbacks and the initial-data push all
	// funnel through outbound so concurrent WriteJSON calls never interleave.
	outbound := make(chan dto.RefreshFrame, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for frame := range outbound {
			if err := conn.WriteJSON(frame); err != nil {
				log.Warn("websocket write failed", "widget_id", frame.WidgetID, "error", err)
				return
			}
		}
	}()

	subscribed := make(map[string]struct{})
	defer func() {
		for widgetID := range subscribed {
			h.RefreshBus.Unsubscribe(widgetID)
		}
		close(outbound)
		<-done
	}()

	for {
		var cmd streamCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch cmd.Action {
		case "subscribe":
			if cmd.WidgetID == "" {
				continue
			}
			widgetID := cmd.WidgetID
			h.RefreshBus.Subscribe(widgetID, cmd.WidgetType, func(data any) {
				select {
				case outbound <- dto.RefreshFrame{WidgetID: widgetID, Data: data}:
				default:
					// Slow consumer: drop the frame, the next tick replaces it.
				}
			})
			subscribed[widgetID] = struct{}{}

			if initial := h.RefreshBus.InitialData(cmd.WidgetType); initial != nil {
				select {
				case outbound <- dto.RefreshFrame{WidgetID: widgetID, Data: initial}:
				default:
				}
			}

		case "unsubscribe":
			h.RefreshBus.Unsubscribe(cmd.WidgetID)
			delete(subscribed, cmd.WidgetID)
		}
	}
}
