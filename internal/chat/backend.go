package chat

import "context"

// SessionConfig describes a remote chat session. Sessions are not portable
// across model identifiers, so switching models means starting a new session
// seeded with History.
type SessionConfig struct {
	Model             string
	SystemInstruction string
	MaxOutputTokens   int32
	Temperature       float32
	History           []Turn
}

// Backend creates stateful chat sessions on a hosted model.
type Backend interface {
	StartSession(ctx context.Context, cfg SessionConfig) (RemoteSession, error)
}

// RemoteSession is a live chat handle. Send returns the raw reply text.
type RemoteSession interface {
	Send(ctx context.Context, text string) (string, error)
}

// Notifier receives transient status updates while a message is in flight,
// such as the notice shown during a throttling backoff.
type Notifier interface {
	Notice(text string)
	ClearNotice()
}

type noopNotifier struct{}

func (noopNotifier) Notice(string) {}
func (noopNotifier) ClearNotice()  {}
