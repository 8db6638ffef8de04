/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the real-time side of the server.

    Every connected client watches one match as one player. Events produced
    by a match controller reach the Hub through Notify and are written to
    the sockets of every client watching that match. Clients may also send
    actions over the socket; they are dispatched like the HTTP ones.

    Architecture:
    - Hub: one per process, owns the client registry in its Run loop.
    - Client: one browser connection, bound to (match, player).
    - ServeWs: upgrades the GET request and wires the client in.
*/

package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/everforgeworks/galaxy-haulers/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is the JSON envelope of everything sent over the socket.
type Message struct {
	Type    string `json:"type"`             // event type, "snapshot" or "error"
	Payload any    `json:"payload"`          // event data
	Sender  string `json:"sender,omitempty"` // player the event is about, if any
}

// Client is one player's connection to one match.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	ctrl   *game.Controller
	match  string
	player string
}

type outbound struct {
	match string
	data  []byte
}

type direct struct {
	client *Client
	data   []byte
}

// Hub keeps the connected clients and fans match events out to them. Only
// one client per (match, player) is kept: a new socket replaces the old one.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	replies    chan direct
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
}

// NewHub creates a Hub accepting the origins allowed by checkOrigin.
// Run must be started before clients connect.
func NewHub(checkOrigin func(origin string) bool) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 1024),
		replies:    make(chan direct, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || checkOrigin(origin)
			},
		},
	}
}

// Run owns the client registry until ctx is cancelled. It is the only
// goroutine writing to or closing a client's send queue.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			for old := range h.clients {
				if old.match == client.match && old.player == client.player {
					// Replaced: closing its queue ends its pumps without
					// disconnecting the player.
					close(old.send)
					delete(h.clients, old)
				}
			}
			h.clients[client] = true
			log.Printf("WS: %s joined match %s", client.player, client.match)

		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
			}

		case r := <-h.replies:
			if h.clients[r.client] {
				h.deliver(r.client, r.data)
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.match == msg.match {
					h.deliver(client, msg.data)
				}
			}
		}
	}
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		log.Printf("WS: %s is not reading, dropping the connection", client.player)
		h.drop(client)
	}
}

// drop forgets the current client of a player and marks the player away.
// The disconnect happens in the Run loop so that a socket registered later
// always reconnects after it. Controllers never wait on the hub.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	if err := client.ctrl.Disconnect(client.player); err != nil {
		log.Printf("WS: disconnect %s: %v", client.player, err)
	}
}

// enqueue hands a registry request to Run; false once the hub has stopped.
func enqueue[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}

// Notify implements game.Notifier. It never blocks the match.
func (h *Hub) Notify(e game.Event) {
	data, err := json.Marshal(Message{Type: string(e.Type), Payload: e.Payload, Sender: e.Player})
	if err != nil {
		log.Printf("WS: cannot encode %s event: %v", e.Type, err)
		return
	}
	select {
	case h.broadcast <- outbound{match: e.Match, data: data}:
	default:
		log.Printf("WS: broadcast queue full, %s event for match %s dropped", e.Type, e.Match)
	}
}

// ServeWs upgrades the request and attaches the connection to match as
// player. The client first receives a full snapshot; afterwards every match
// event. Closing the socket disconnects the player from the match unless a
// newer socket took its place.
func (h *Hub) ServeWs(ctrl *game.Controller, player string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WS Upgrade Error:", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256), ctrl: ctrl, match: ctrl.ID(), player: player}
	if !enqueue(h, h.register, client) {
		conn.Close()
		return
	}

	if err := ctrl.Reconnect(player); err != nil {
		log.Printf("WS: reconnect %s: %v", player, err)
	}
	client.reply(Message{Type: "snapshot", Payload: ctrl.Snapshot()})

	go client.writePump()
	go client.readPump()
}

// reply queues a message for this client only.
func (c *Client) reply(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("WS: cannot encode reply: %v", err)
		return
	}
	enqueue(c.hub, c.hub.replies, direct{client: c, data: data})
}

// readPump turns incoming messages into match actions until the socket
// closes.
func (c *Client) readPump() {
	defer func() {
		enqueue(c.hub, c.hub.unregister, c)
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var req ActionRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS Error: %v", err)
			}
			return
		}
		// A socket always speaks for its own player.
		req.Player = c.player
		if err := Dispatch(c.ctrl, req); err != nil {
			c.reply(Message{Type: "error", Payload: err.Error(), Sender: c.player})
		}
	}
}

// writePump drains the send queue and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
