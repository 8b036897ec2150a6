package chat

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// CachedReply is a previously served assistant reply. HTML is the formatted
// markup; Text keeps the raw reply so a cache hit yields a full message.
type CachedReply struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// ResponseCache memoizes replies by normalized query text.
type ResponseCache interface {
	Get(ctx context.Context, key string) (CachedReply, bool)
	Set(ctx context.Context, key string, reply CachedReply)
}

// Normalize canonicalizes user input for use as a cache key: lowercase, every
// character that is not a letter, digit or space removed, whitespace collapsed.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// MemoryCache is an unbounded in-process cache with no expiry. It lives as
// long as the process that owns it.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CachedReply
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CachedReply)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (CachedReply, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reply, ok := c.entries[key]
	return reply, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, reply CachedReply) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = reply
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
