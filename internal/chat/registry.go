package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("chat session not found")

type entry struct {
	conv     *Conversation
	lastSeen time.Time
}

// Registry keeps the open conversations of the process, one per chat widget,
// and closes the ones that have been idle for longer than the idle timeout.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	backend Backend
	profile Profile
	opts    Options
	shared  Shared
	logger  *zap.Logger
	idle    time.Duration
	now     func() time.Time
}

func NewRegistry(backend Backend, profile Profile, opts Options, shared Shared, idle time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	// Every conversation of the registry shares one cache and one window.
	if shared.Cache == nil {
		shared.Cache = NewMemoryCache()
	}
	if shared.Limiter == nil {
		shared.Limiter = NewRateWindow(DefaultRPMLimit, DefaultRateWindow)
	}
	return &Registry{
		entries: make(map[string]*entry),
		backend: backend,
		profile: profile,
		opts:    opts,
		shared:  shared,
		logger:  logger,
		idle:    idle,
		now:     time.Now,
	}
}

// Open creates a conversation, starts its remote session and returns it
// together with the greeting already in its transcript.
func (r *Registry) Open(ctx context.Context) *Conversation {
	id := uuid.NewString()
	conv := NewConversation(id, r.backend, r.profile, r.opts, r.shared, r.logger)
	conv.Open(ctx)

	r.mu.Lock()
	r.entries[id] = &entry{conv: conv, lastSeen: r.now()}
	r.mu.Unlock()

	return conv
}

// Get returns the conversation and marks it as recently used.
func (r *Registry) Get(id string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.conv, nil
}

// Close drops the conversation. Its history is discarded with it.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes conversations idle for longer than the idle timeout and
// returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle conversations until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idle / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("closed idle chat sessions", zap.Int("count", n), zap.Int("open", r.Len()))
			}
		}
	}
}
