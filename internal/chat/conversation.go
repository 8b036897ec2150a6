package chat

import (
	"context"
	"errors"
	"html"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio-backend/internal/models"
)

var ErrEmptyMessage = errors.New("message is empty")

const retryNotice = "Lots of questions right now, retrying in a few seconds…"

// Source tells the caller how a reply was produced.
type Source string

const (
	SourceLive        Source = "live"
	SourceCache       Source = "cache"
	SourceOffline     Source = "offline"
	SourceRateLimited Source = "rate_limited"
	SourceError       Source = "error"
)

// Profile holds the texts a conversation needs about the site owner.
type Profile struct {
	Name              string
	SystemInstruction string
	LiveGreeting      string
	OfflineGreeting   string
	// ContactReply answers every message when no backend is configured.
	ContactReply string
	// ContactCard is appended to every error message.
	ContactCard      string
	RateLimitedReply string
}

type Options struct {
	PrimaryModel    string
	FallbackModel   string
	MaxPairs        int
	RetryBackoff    time.Duration
	MaxOutputTokens int32
	Temperature     float32
}

// Shared is the state every conversation of the process uses: the reply
// cache and the outbound rate window. It is built once by the application
// and handed to each conversation.
type Shared struct {
	Cache   ResponseCache
	Limiter Limiter
}

type Reply struct {
	Message     models.ChatMessage
	Suggestions []string
	Source      Source
	Model       string
	ErrorKind   ErrorKind
}

// Conversation is one open chat widget. It owns at most one live remote
// session and serializes sends, so only one message is ever in flight.
type Conversation struct {
	mu      sync.Mutex
	id      string
	backend Backend
	profile Profile
	opts    Options
	shared  Shared
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error

	session  RemoteSession
	model    string
	history  *History
	messages []models.ChatMessage
	opened   bool
}

// NewConversation creates a conversation. A nil backend means no credential
// is configured; the conversation then answers with contact details only.
func NewConversation(id string, backend Backend, profile Profile, opts Options, shared Shared, logger *zap.Logger) *Conversation {
	if shared.Cache == nil {
		shared.Cache = NewMemoryCache()
	}
	if shared.Limiter == nil {
		shared.Limiter = NewRateWindow(DefaultRPMLimit, DefaultRateWindow)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Conversation{
		id:      id,
		backend: backend,
		profile: profile,
		opts:    opts,
		shared:  shared,
		logger:  logger.With(zap.String("session_id", id)),
		sleep:   sleepContext,
		history: NewHistory(opts.MaxPairs),
	}
}

func (c *Conversation) ID() string {
	return c.id
}

// Open starts the remote session against the primary model and returns the
// greeting. Calling it again returns the original greeting.
func (c *Conversation) Open(ctx context.Context) models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opened && len(c.messages) > 0 {
		return c.messages[0]
	}
	c.opened = true

	if c.backend == nil {
		return c.appendModel(c.profile.OfflineGreeting, Format(c.profile.OfflineGreeting))
	}

	if err := c.startSession(ctx, c.opts.PrimaryModel, nil); err != nil {
		c.logger.Warn("chat session unavailable, falling back to contact mode", zap.Error(err))
		return c.appendModel(c.profile.OfflineGreeting, Format(c.profile.OfflineGreeting))
	}

	c.logger.Info("chat session opened", zap.String("model", c.model))
	return c.appendModel(c.profile.LiveGreeting, Format(c.profile.LiveGreeting))
}

// Send answers one visitor message. Backend failures never surface as an
// error; they become a model message. The only error is ErrEmptyMessage.
func (c *Conversation) Send(ctx context.Context, text string, n Notifier) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	if n == nil {
		n = noopNotifier{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, models.ChatMessage{
		Role: models.RoleUser,
		Text: text,
		HTML: html.EscapeString(text),
	})

	if c.session == nil {
		return c.canned(c.profile.ContactReply, SourceOffline, text), nil
	}

	key := Normalize(text)
	if key != "" {
		if cached, ok := c.shared.Cache.Get(ctx, key); ok {
			c.logger.Debug("chat reply served from cache", zap.String("key", key))
			msg := c.appendModel(cached.Text, cached.HTML)
			return Reply{Message: msg, Suggestions: Suggest(text), Source: SourceCache, Model: c.model}, nil
		}
	}

	if c.shared.Limiter.Limited(ctx) {
		c.logger.Info("chat rate window full")
		return c.canned(c.profile.RateLimitedReply, SourceRateLimited, text), nil
	}

	raw, err := c.exchange(ctx, text, n)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errors.New("chat backend returned an empty reply")
	}
	if err != nil {
		kind := Classify(err)
		c.logger.Warn("chat message failed",
			zap.String("model", c.model),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		reply := c.canned(UserMessage(kind, c.profile.ContactCard), SourceError, text)
		reply.ErrorKind = kind
		return reply, nil
	}

	formatted := Format(raw)

	c.history.Push(text, raw)
	if c.history.Trim() {
		if err := c.startSession(ctx, c.model, c.history.Turns()); err != nil {
			c.logger.Warn("failed to rebuild chat session with trimmed history", zap.Error(err))
		}
	}

	if key != "" {
		c.shared.Cache.Set(ctx, key, CachedReply{Text: raw, HTML: formatted})
	}

	msg := c.appendModel(raw, formatted)
	return Reply{Message: msg, Suggestions: Suggest(text), Source: SourceLive, Model: c.model}, nil
}

// exchange performs the live call. A throttled call is retried once after the
// backoff; a model-unavailable failure on the primary model rebuilds the
// session on the fallback model, replaying the trimmed history, and retries
// once. After a fallback no further retry is made.
func (c *Conversation) exchange(ctx context.Context, text string, n Notifier) (string, error) {
	throttleRetry, fallbackRetry := true, true

	for {
		c.shared.Limiter.Record(ctx)
		raw, err := c.session.Send(ctx, text)
		if err == nil {
			return raw, nil
		}

		kind := Classify(err)
		switch {
		case kind == ErrorThrottled && throttleRetry:
			throttleRetry = false
			c.logger.Info("chat backend throttled, backing off", zap.Duration("backoff", c.opts.RetryBackoff))
			n.Notice(retryNotice)
			sleepErr := c.sleep(ctx, c.opts.RetryBackoff)
			n.ClearNotice()
			if sleepErr != nil {
				return "", sleepErr
			}

		case kind == ErrorModelUnavailable && fallbackRetry && c.canFallback():
			fallbackRetry = false
			throttleRetry = false
			c.logger.Warn("primary chat model unavailable, switching to fallback",
				zap.String("from", c.model),
				zap.String("to", c.opts.FallbackModel),
				zap.Error(err),
			)
			if err := c.startSession(ctx, c.opts.FallbackModel, c.history.Turns()); err != nil {
				return "", err
			}

		default:
			return "", err
		}
	}
}

func (c *Conversation) canFallback() bool {
	return c.opts.FallbackModel != "" && c.model == c.opts.PrimaryModel && c.model != c.opts.FallbackModel
}

func (c *Conversation) startSession(ctx context.Context, model string, seed []Turn) error {
	session, err := c.backend.StartSession(ctx, SessionConfig{
		Model:             model,
		SystemInstruction: c.profile.SystemInstruction,
		MaxOutputTokens:   c.opts.MaxOutputTokens,
		Temperature:       c.opts.Temperature,
		History:           seed,
	})
	if err != nil {
		return err
	}
	c.session = session
	c.model = model
	return nil
}

func (c *Conversation) canned(text string, source Source, utterance string) Reply {
	msg := c.appendModel(text, Format(text))
	return Reply{Message: msg, Suggestions: Suggest(utterance), Source: source, Model: c.model}
}

func (c *Conversation) appendModel(text, formatted string) models.ChatMessage {
	msg := models.ChatMessage{Role: models.RoleModel, Text: text, HTML: formatted}
	c.messages = append(c.messages, msg)
	return msg
}

// Messages returns the transcript shown in the widget.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Model returns the active model identifier, empty in offline mode.
func (c *Conversation) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// Live reports whether a remote session is attached.
func (c *Conversation) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// HistoryLen is the number of turns buffered for replay.
func (c *Conversation) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Len()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
