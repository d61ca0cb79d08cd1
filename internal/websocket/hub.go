// Package websocket pushes timer set changes to in-runtime views over a
// single shared WebSocket feed.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

const (
	maxClients   = 50
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			_ = cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	_ = cw.conn.Close()
}

// --- Hub ---

// Hub fans snapshots out to every connected view. All views see the same
// feed; there are no per-client subscriptions.
type Hub struct {
	cmdCh   chan hubCmd
	clients map[*websocket.Conn]*clientWriter
}

func NewHub() *Hub {
	hub := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		clients: make(map[*websocket.Conn]*clientWriter),
	}
	go hub.run()
	return hub
}

// Register adds a connection to the feed.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// Broadcast pushes a snapshot to every connected view. Never blocks the
// caller: slow clients drop messages from their own buffer.
func (h *Hub) Broadcast(snapshot domain.SetSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		slog.Debug("Failed to encode snapshot for view feed", "error", err)
		return
	}

	select {
	case h.cmdCh <- cmdBroadcast{data: data}:
	default:
		slog.Debug("View feed congested, dropping snapshot")
	}
}

// ClientCount returns the number of connected views.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop closes every connection and shuts the hub down.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= maxClients {
		slog.Warn("Rejecting view connection: max clients reached", "max", maxClients)
		_ = c.conn.Close()
		c.errCh <- fmt.Errorf("max clients (%d) reached", maxClients)
		return
	}

	h.clients[c.conn] = newClientWriter(c.conn)
	slog.Debug("View connected", "clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}
	delete(h.clients, conn)
	cw.stop()
	slog.Debug("View disconnected", "clients", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			// Slow client: drop it rather than stall the feed.
			delete(h.clients, conn)
			cw.stop()
		}
	}
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		delete(h.clients, conn)
		cw.stop()
	}
}
