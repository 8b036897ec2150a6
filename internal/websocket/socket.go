package websocket

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 8 * 1024
)

type chatSessions interface {
	Open(ctx context.Context) *chat.Conversation
	Close(id string) bool
}

// ChatSocket serves the chat widget over a WebSocket. Each connection owns
// one conversation for as long as it stays open.
type ChatSocket struct {
	sessions   chatSessions
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	pongWait   time.Duration
	pingPeriod time.Duration
}

// NewChatSocket accepts connections from the comma-separated frontend
// origins. Requests without an Origin header are accepted.
func NewChatSocket(sessions chatSessions, frontendURL string, logger *zap.Logger) *ChatSocket {
	if logger == nil {
		logger = zap.NewNop()
	}

	allowed := make(map[string]bool)
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}

	return &ChatSocket{
		sessions:   sessions,
		logger:     logger,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (s *ChatSocket) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conv := s.sessions.Open(ctx)
	c := &client{conn: conn, done: make(chan struct{})}
	logger := s.logger.With(zap.String("session_id", conv.ID()))

	defer func() {
		close(c.done)
		conn.Close()
		s.sessions.Close(conv.ID())
		logger.Info("chat socket closed")
	}()

	logger.Info("chat socket opened", zap.Bool("live", conv.Live()))

	if err := c.write(models.WSFrame{
		Type: models.FrameGreeting,
		Payload: models.OpenSessionResponse{
			SessionID: conv.ID(),
			Live:      conv.Live(),
			Model:     conv.Model(),
			Messages:  conv.Messages(),
		},
	}); err != nil {
		return
	}

	go c.ping(s.pingPeriod)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	for {
		var in models.WSFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logger.Warn("chat socket read failed", zap.Error(err))
			}
			return
		}

		if in.Type != models.FrameMessage {
			if c.write(models.WSFrame{Type: models.FrameError, Text: "Unsupported frame type"}) != nil {
				return
			}
			continue
		}

		reply, err := conv.Send(ctx, in.Text, c)
		// Send can outlast pongWait while it waits for a slot or backs off.
		conn.SetReadDeadline(time.Now().Add(s.pongWait))
		if errors.Is(err, chat.ErrEmptyMessage) {
			if c.write(models.WSFrame{Type: models.FrameError, Text: "Message must not be empty"}) != nil {
				return
			}
			continue
		}

		if err := c.write(models.WSFrame{Type: models.FrameReply, Payload: replyPayload(reply)}); err != nil {
			return
		}
	}
}

func replyPayload(reply chat.Reply) models.ChatResponse {
	suggestions := reply.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return models.ChatResponse{
		Message:     reply.Message,
		Suggestions: suggestions,
		Source:      string(reply.Source),
		Model:       reply.Model,
	}
}

// client serializes writes on one connection. It also acts as the
// conversation's notifier, so retry notices reach the widget mid-send.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

func (c *client) write(frame models.WSFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(frame)
}

func (c *client) Notice(text string) {
	c.write(models.WSFrame{Type: models.FrameNotice, Text: text})
}

func (c *client) ClearNotice() {
	c.write(models.WSFrame{Type: models.FrameNoticeClear})
}

func (c *client) ping(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
