package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection serves score requests arriving on one WebSocket. Requests are
// handled in order; a connection that stays silent longer than the idle
// timeout is closed.
type Connection struct {
	conn        *websocket.Conn
	scoring     *ScoringService
	clock       quartz.Clock
	idleTimeout time.Duration
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, scoring *ScoringService, clock quartz.Clock, idleTimeout time.Duration, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		scoring:     scoring,
		clock:       clock,
		idleTimeout: idleTimeout,
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Done is closed once the connection has been closed
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Serve reads requests until the peer disconnects or the connection is closed
func (c *Connection) Serve() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)

	var idle *quartz.Timer
	if c.idleTimeout > 0 {
		idle = c.clock.AfterFunc(c.idleTimeout, c.closeIdle)
		defer idle.Stop()
	}

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		if idle != nil {
			idle.Reset(c.idleTimeout)
		}

		reply := c.handleMessage(&msg)
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(reply); err != nil {
			c.logger.Error("Failed to write message", "error", err)
			return
		}
	}
}

func (c *Connection) closeIdle() {
	c.logger.Info("Closing idle connection", "timeout", c.idleTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "idle timeout")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = c.Close()
}

// handleMessage processes one request and builds the reply
func (c *Connection) handleMessage(msg *Message) *Message {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.logger.Debug("Received message", "type", msg.Type, "requestId", requestID)

	var (
		replyType MessageType
		result    any
		err       error
	)

	switch msg.Type {
	case MessageTypeScore:
		replyType = MessageTypeScoreResult
	case MessageTypeValidate:
		replyType = MessageTypeValidateResult
	default:
		return c.errorReply(requestID, CodeBadRequest, "unknown message type: "+msg.Type.String())
	}

	var data GameData
	if err = json.Unmarshal(msg.Data, &data); err != nil {
		return c.errorReply(requestID, CodeBadRequest, "failed to parse game data")
	}

	if msg.Type == MessageTypeScore {
		result, err = c.scoring.Score(data)
	} else {
		result, err = c.scoring.Validate(data)
	}

	if err != nil {
		return c.errorReply(requestID, ErrorCode(err), err.Error())
	}

	reply, err := NewMessage(replyType, result)
	if err != nil {
		return c.errorReply(requestID, CodeBadRequest, "failed to encode reply")
	}
	reply.RequestID = requestID
	return reply
}

func (c *Connection) errorReply(requestID, code, message string) *Message {
	reply, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		// ErrorData always encodes
		panic(err)
	}
	reply.RequestID = requestID
	return reply
}
