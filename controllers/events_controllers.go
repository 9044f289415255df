package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/smartcanteen/canteen-app/events"
	"github.com/smartcanteen/canteen-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderEventsHandler upgrades a staff dashboard connection and keeps it
// registered with the events hub until it disconnects.
func OrderEventsHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("events: websocket upgrade failed: %v", err)
		return
	}

	role := c.GetString("role")
	events.RegisterClient(conn, role)
	utils.InfoLogger.Printf("events: %s dashboard connected", role)

	// Drain the connection; clients only listen, so the first read
	// error means they are gone.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			events.UnregisterClient(conn)
			return
		}
	}
}
