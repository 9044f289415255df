package events

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/utils"
)

// Event types pushed to the staff order board.
const (
	EventOrderPlaced = "order_placed"
	EventOrderStatus = "order_status"
	EventDailyReset  = "daily_reset"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks the websocket connections of open staff dashboards.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderPlaced announces a new incoming order.
func BroadcastOrderPlaced(order models.Order) {
	broadcast(Message{Event: EventOrderPlaced, Data: order})
}

// BroadcastOrderStatus announces a status change.
func BroadcastOrderStatus(order models.Order) {
	broadcast(Message{Event: EventOrderStatus, Data: order})
}

// BroadcastDailyReset announces that daily stock was zeroed.
func BroadcastDailyReset(rows int64) {
	broadcast(Message{Event: EventDailyReset, Data: map[string]int64{"items_reset": rows}})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(msg); err != nil {
			utils.ErrorLogger.Printf("events: dropping client after write error: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
