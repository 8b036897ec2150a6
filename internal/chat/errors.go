package chat

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind is the classified outcome of a failed chat call.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorInvalidCredential
	ErrorQuotaExceeded
	ErrorModelUnavailable
	ErrorThrottled
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorInvalidCredential:
		return "invalid_credential"
	case ErrorQuotaExceeded:
		return "quota_exceeded"
	case ErrorModelUnavailable:
		return "model_unavailable"
	case ErrorThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// BackendError is the structured failure a Backend adapter reports. Status is
// the upstream HTTP status when known, Reason a provider reason code such as
// RESOURCE_EXHAUSTED.
type BackendError struct {
	Status  int
	Reason  string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("chat backend error %d: %s", e.Status, msg)
	}
	return "chat backend error: " + msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Classify maps a backend failure to an ErrorKind. Structured status codes
// win; upstream text is only consulted when no status is available, so a
// rewording upstream cannot turn a 429 into something else.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorUnknown
	}

	var status int
	var reason string
	var be *BackendError
	if errors.As(err, &be) {
		status = be.Status
		reason = strings.ToUpper(be.Reason)
	}
	text := strings.ToLower(err.Error())

	switch {
	case status == http.StatusTooManyRequests,
		reason == "RESOURCE_EXHAUSTED",
		status == 0 && (strings.Contains(text, "429") ||
			strings.Contains(text, "resource_exhausted") ||
			strings.Contains(text, "resource exhausted") ||
			strings.Contains(text, "too many requests")):
		return ErrorThrottled

	case status == http.StatusUnauthorized,
		reason == "API_KEY_INVALID",
		strings.Contains(text, "api key not valid"),
		strings.Contains(text, "api_key_invalid"),
		strings.Contains(text, "invalid api key"),
		strings.Contains(text, "incorrect api key"):
		return ErrorInvalidCredential

	case strings.Contains(text, "quota"):
		return ErrorQuotaExceeded

	case status == http.StatusNotFound,
		reason == "NOT_FOUND",
		status == 0 && (strings.Contains(text, "404") ||
			strings.Contains(text, "not found") ||
			strings.Contains(text, "is not supported for generatecontent")):
		return ErrorModelUnavailable
	}

	if status == http.StatusForbidden {
		return ErrorInvalidCredential
	}
	return ErrorUnknown
}

// UserMessage is the visitor-facing text for a failure. It depends only on
// the kind, and always ends with a direct way to reach the site owner.
func UserMessage(kind ErrorKind, contact string) string {
	var lead string
	switch kind {
	case ErrorInvalidCredential:
		lead = "The AI assistant is not configured correctly right now, so I can't answer here."
	case ErrorQuotaExceeded:
		lead = "The AI assistant has used up its quota for now. Please try again later."
	case ErrorThrottled:
		lead = "The AI assistant is receiving a lot of questions at the moment. Please try again in a minute."
	case ErrorModelUnavailable:
		lead = "The AI model behind this assistant is unavailable at the moment."
	default:
		lead = "Sorry, I ran into a problem answering that."
	}
	return lead + "\n\nYou can always reach me directly:\n" + contact
}
