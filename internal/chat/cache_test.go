package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What skills do you have?", "what skills do you have"},
		{"  what SKILLS,   do you   have?? ", "what skills do you have"},
		{"Tell me about\tC++ & Go!", "tell me about c go"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "hello", CachedReply{Text: "hi", HTML: "hi"})
	got, ok := c.Get(ctx, "hello")
	assert.True(t, ok)
	assert.Equal(t, "hi", got.Text)

	c.Set(ctx, "hello", CachedReply{Text: "hey", HTML: "hey"})
	got, _ = c.Get(ctx, "hello")
	assert.Equal(t, "hey", got.Text)
	assert.Equal(t, 1, c.Len())
}
