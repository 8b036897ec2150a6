package chat

import (
	"context"
	"sync"
	"time"
)

type fakeResult struct {
	text string
	err  error
}

// fakeBackend hands out sessions that pop results from a shared queue. When
// the queue is empty a session echoes the input.
type fakeBackend struct {
	mu       sync.Mutex
	starts   []SessionConfig
	results  []fakeResult
	calls    []string
	startErr error
}

func (b *fakeBackend) StartSession(_ context.Context, cfg SessionConfig) (RemoteSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.startErr != nil {
		return nil, b.startErr
	}
	b.starts = append(b.starts, cfg)
	return &fakeSession{backend: b, model: cfg.Model}, nil
}

func (b *fakeBackend) queue(results ...fakeResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, results...)
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type fakeSession struct {
	backend *fakeBackend
	model   string
}

func (s *fakeSession) Send(_ context.Context, text string) (string, error) {
	b := s.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, s.model+":"+text)
	if len(b.results) == 0 {
		return "reply to " + text, nil
	}
	r := b.results[0]
	b.results = b.results[1:]
	return r.text, r.err
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notice(text string) { n.events = append(n.events, "notice:"+text) }
func (n *recordingNotifier) ClearNotice()       { n.events = append(n.events, "clear") }

func testProfile() Profile {
	return Profile{
		Name:              "Test Owner",
		SystemInstruction: "You are the assistant of Test Owner.",
		LiveGreeting:      "Hello! I'm an AI assistant.",
		OfflineGreeting:   "Hi! I'm Test Owner.",
		ContactReply:      "Please contact me directly: owner@example.com",
		ContactCard:       "📧 owner@example.com",
		RateLimitedReply:  "Too many questions at once, please wait a minute.",
	}
}

func testOptions() Options {
	return Options{
		PrimaryModel:    "primary-model",
		FallbackModel:   "fallback-model",
		MaxPairs:        5,
		RetryBackoff:    10 * time.Second,
		MaxOutputTokens: 512,
		Temperature:     0.5,
	}
}

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func newTestConversation(backend Backend, opts Options) (*Conversation, *sleepRecorder) {
	shared := Shared{Cache: NewMemoryCache(), Limiter: NewRateWindow(DefaultRPMLimit, DefaultRateWindow)}
	conv := NewConversation("test", backend, testProfile(), opts, shared, nil)
	rec := &sleepRecorder{}
	conv.sleep = rec.sleep
	return conv, rec
}
