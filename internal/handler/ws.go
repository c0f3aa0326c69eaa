package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hail/internal/service"
	"hail/internal/ws"
)

// Client-to-server event names.
const (
	eventJoin           = "join"
	eventUpdateLocation = "update-location-captain"
	eventError          = "error"
)

// clientMessage is the envelope for every client-to-server event.
type clientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// joinPayload associates the connection with an account.
type joinPayload struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
}

// locationPayload carries a captain position update.
type locationPayload struct {
	UserID   string `json:"userId"`
	Location struct {
		Lat float64 `json:"ltd"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// WSHandler owns the realtime channel: it upgrades connections, applies
// join/leave bookkeeping against the hub and feeds captain location
// updates into the location store.
type WSHandler struct {
	hub            *ws.Hub
	captainService *service.CaptainService
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, captainService *service.CaptainService) *WSHandler {
	return &WSHandler{
		hub:            hub,
		captainService: captainService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /v1/ws
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	go h.readLoop(conn)
}

// readLoop processes client events until the connection drops, then
// clears the registry and presence for every account on the connection.
func (h *WSHandler) readLoop(conn *websocket.Conn) {
	defer h.disconnect(conn)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Event {
		case eventJoin:
			h.handleJoin(conn, msg.Data)
		case eventUpdateLocation:
			h.handleLocation(conn, msg.Data)
		default:
			h.sendError(conn, "unknown event")
		}
	}
}

func (h *WSHandler) handleJoin(conn *websocket.Conn, data json.RawMessage) {
	var payload joinPayload
	if err := ws.DecodeData(data, &payload); err != nil || payload.UserID == "" || payload.UserType == "" {
		h.sendError(conn, "userId and userType are required")
		return
	}

	role := ws.Role(payload.UserType)
	if role != ws.RoleRider && role != ws.RoleCaptain {
		h.sendError(conn, "invalid userType")
		return
	}

	h.hub.Register(payload.UserID, role, conn)

	if role == ws.RoleCaptain {
		if err := h.captainService.SetOnline(context.Background(), payload.UserID); err != nil {
			log.Printf("[WS] set captain %s online: %v", payload.UserID, err)
		}
	}
}

func (h *WSHandler) handleLocation(conn *websocket.Conn, data json.RawMessage) {
	var payload locationPayload
	if err := ws.DecodeData(data, &payload); err != nil || payload.UserID == "" {
		h.sendError(conn, "invalid location data")
		return
	}

	err := h.captainService.UpdateLocation(context.Background(), payload.UserID, payload.Location.Lat, payload.Location.Lng)
	if err != nil {
		h.sendError(conn, "failed to update location")
	}
}

// disconnect clears the registry for every account on the connection
// and marks cleared captains offline.
func (h *WSHandler) disconnect(conn *websocket.Conn) {
	defer conn.Close()

	for _, account := range h.hub.Unregister(conn) {
		if account.Role != ws.RoleCaptain {
			continue
		}
		if err := h.captainService.SetOffline(context.Background(), account.ID); err != nil {
			log.Printf("[WS] set captain %s offline: %v", account.ID, err)
		}
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(ws.Message{Event: eventError, Data: gin.H{"message": message}})
}
