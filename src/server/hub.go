package server

import (
	"context"
	"encoding/json"
	"net/http"

	"k-stock-insight/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	messageInitial = "INITIAL"
	messageUpdate  = "UPDATE"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *RelayServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				s.dropClient(client)
			}
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Store(int32(len(s.clients)))
			// Send full state on connect
			client.send <- &models.MStateMessage{Type: messageInitial, State: s.source.Snapshot()}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				s.dropClient(client)
			}

		case client := <-s.resend:
			if _, ok := s.clients[client]; ok {
				select {
				case client.send <- &models.MStateMessage{Type: messageInitial, State: s.source.Snapshot()}:
				default:
				}
			}

		case message := <-s.broadcast:
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect to prevent Hub blocking
					s.Logger.Warning("Dropping slow WebSocket client")
					s.dropClient(client)
				}
			}
		}
	}
}

func (s *RelayServer) dropClient(client *Client) {
	delete(s.clients, client)
	close(client.send)
	s.connections.Store(int32(len(s.clients)))
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Publish snapshots the store and queues the result for every client. It is
// meant to be registered as a store listener.
func (s *RelayServer) Publish(ev models.MStoreEvent) {
	message := &models.MStateMessage{
		Type:  messageUpdate,
		Event: &ev,
		State: s.source.Snapshot(),
	}

	select {
	case s.broadcast <- message:
	case <-s.done:
	default:
		s.Logger.Warning("Broadcast queue full, dropping %s event", ev.Kind)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowedOrigin(origin)
	},
}

// -----------------------------------------------------------------------------

func (s *RelayServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MStateMessage, 64),
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *RelayServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	switch cmd.Command {
	case "state":
		select {
		case s.resend <- client:
		case <-s.done:
		}

	case "refresh":
		// results reach the client through the store events
		go s.source.RefreshAll(context.Background())

	case "clear_error":
		if cmd.Category == "" {
			s.source.ClearError()
		} else if cmd.Category.IsValid() {
			s.source.ClearError(cmd.Category)
		}

	default:
		s.Logger.Debug("Ignoring client command %q", cmd.Command)
	}
}
