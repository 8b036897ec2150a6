package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/models"
)

// maxMessageBytes bounds a chat request body.
const maxMessageBytes = 8 << 10

type ChatHandler struct {
	sessions chatSessions
}

type chatSessions interface {
	Open(ctx context.Context) *chat.Conversation
	Get(id string) (*chat.Conversation, error)
	Close(id string) bool
}

func NewChatHandler(sessions chatSessions) *ChatHandler {
	return &ChatHandler{sessions: sessions}
}

func (h *ChatHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	conv := h.sessions.Open(r.Context())

	writeJSON(w, http.StatusCreated, models.OpenSessionResponse{
		SessionID: conv.ID(),
		Live:      conv.Live(),
		Model:     conv.Model(),
		Messages:  conv.Messages(),
	})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	conv, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat session not found", r))
		return
	}

	reply, err := conv.Send(r.Context(), req.Message, nil)
	if errors.Is(err, chat.ErrEmptyMessage) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message must not be empty", r))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to send message", r))
		return
	}

	writeJSON(w, http.StatusOK, chatResponse(reply))
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	conv, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat session not found", r))
		return
	}

	writeJSON(w, http.StatusOK, models.TranscriptResponse{
		SessionID: conv.ID(),
		Messages:  conv.Messages(),
	})
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Close(chi.URLParam(r, "id")) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat session not found", r))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func chatResponse(reply chat.Reply) models.ChatResponse {
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
