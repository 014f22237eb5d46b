package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client. A
// connection serializes its own message handling, so all actions for
// its player arrive at the engine one at a time.
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	player      blackjack.Player
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 64),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player identity
func (c *Connection) SetPlayer(player blackjack.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = player
}

// Player returns the associated player identity
func (c *Connection) Player() blackjack.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.Player().ID)

	switch msg.Type {
	case MessageTypeHello:
		var data HelloData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse hello data")
			return
		}
		c.handleHello(data)

	case MessageTypeNewGame:
		var data NewGameData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError("invalid_message", "Failed to parse new game data")
				return
			}
		}
		c.handleNewGame(data)

	case MessageTypeHit:
		c.handleHit()

	case MessageTypeStand:
		c.handleStand()

	case MessageTypeQuit:
		c.handleQuit()

	default:
		c.sendError("unknown_message", "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleHello(data HelloData) {
	if data.PlayerName == "" {
		c.sendError("invalid_player", "Player name is required")
		return
	}

	// Connections are single-player: the name doubles as the stable
	// identity the registry keys on
	c.SetPlayer(blackjack.Player{ID: data.PlayerName, Name: data.PlayerName})
	c.logger.Info("Player identified", "player", data.PlayerName)

	c.reply(MessageTypeHelloAck, HelloAckData{PlayerID: data.PlayerName})
}

func (c *Connection) handleNewGame(data NewGameData) {
	player := c.Player()
	if player.ID == "" {
		c.sendError("not_identified", "Send hello before starting a game")
		return
	}

	snap, err := c.gameService.NewGame(player, data.Replace)
	if err != nil {
		if errors.Is(err, session.ErrActiveGame) {
			c.sendError("active_game", err.Error())
			return
		}
		c.sendError("internal", err.Error())
		return
	}

	c.reply(MessageTypeGameState, GameStateFromSnapshot(snap))
}

func (c *Connection) handleHit() {
	snap, accepted, err := c.gameService.Hit(c.Player().ID)
	if err != nil {
		c.sendError("no_game", "You don't have an active game")
		return
	}
	if !accepted {
		c.logger.Debug("Ignoring stale hit", "player", c.Player().ID)
	}

	c.reply(MessageTypeGameState, GameStateFromSnapshot(snap))
}

func (c *Connection) handleStand() {
	snap, accepted, err := c.gameService.Stand(c.Player().ID)
	if err != nil {
		c.sendError("no_game", "You don't have an active game")
		return
	}
	if !accepted {
		c.logger.Debug("Ignoring stale stand", "player", c.Player().ID)
	}

	c.reply(MessageTypeGameState, GameStateFromSnapshot(snap))
}

func (c *Connection) handleQuit() {
	existed := c.gameService.Quit(c.Player().ID)
	reason := "quit"
	if !existed {
		reason = "no_game"
	}

	c.reply(MessageTypeGameEnded, GameEndedData{Reason: reason})
}

func (c *Connection) reply(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Failed to send message", "type", messageType, "error", err)
	}
}

func (c *Connection) sendError(code, message string) {
	c.reply(MessageTypeError, ErrorData{Code: code, Message: message})
}
