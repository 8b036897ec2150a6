package models

// Message roles. A "model" message is rendered on the assistant side and is
// never replayed upstream as user input.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
	HTML string `json:"html"`
}

// OpenSessionResponse is returned when a chat widget is opened.
type OpenSessionResponse struct {
	SessionID string        `json:"session_id"`
	Live      bool          `json:"live"`
	Model     string        `json:"model,omitempty"`
	Messages  []ChatMessage `json:"messages"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Message     ChatMessage `json:"message"`
	Suggestions []string    `json:"suggestions"`
	Source      string      `json:"source"`
	Model       string      `json:"model,omitempty"`
}

// TranscriptResponse lists every message of an open session.
type TranscriptResponse struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
}

// WebSocket frame types
const (
	FrameGreeting    = "greeting"
	FrameMessage     = "message"
	FrameReply       = "reply"
	FrameNotice      = "notice"
	FrameNoticeClear = "notice_clear"
	FrameError       = "error"
)

type WSFrame struct {
	Type    string      `json:"type"`
	Text    string      `json:"text,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}
