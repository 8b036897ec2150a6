package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/models"
)

// GeminiService opens chat sessions on Google's hosted Gemini models.
type GeminiService struct {
	client   *genai.Client
	logger   *zap.Logger
	rateChan chan struct{} // concurrent request slots
}

// NewGeminiService creates the client. Extra options are appended after the
// API key, e.g. option.WithEndpoint.
func NewGeminiService(ctx context.Context, apiKey string, concurrentReqs int, logger *zap.Logger, opts ...option.ClientOption) (*GeminiService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:   client,
		logger:   logger,
		rateChan: newRateSlots(concurrentReqs),
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// StartSession configures a model and starts a chat seeded with history.
// No request is made until the first Send.
func (s *GeminiService) StartSession(_ context.Context, cfg chat.SessionConfig) (chat.RemoteSession, error) {
	if cfg.Model == "" {
		return nil, errors.New("gemini: model is required")
	}

	model := s.client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}
	if cfg.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(cfg.SystemInstruction)}}
	}

	cs := model.StartChat()
	cs.History = geminiHistory(cfg.History)

	return &geminiSession{service: s, chat: cs, model: cfg.Model}, nil
}

type geminiSession struct {
	service *GeminiService
	chat    *genai.ChatSession
	model   string
}

func (g *geminiSession) Send(ctx context.Context, text string) (string, error) {
	if err := acquireRate(ctx, g.service.rateChan); err != nil {
		return "", err
	}
	defer releaseRate(g.service.rateChan)

	// SendMessage appends the user turn before calling out and keeps it on
	// failure. Roll back so a retry does not carry the turn twice.
	n := len(g.chat.History)

	start := time.Now()
	resp, err := g.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		g.chat.History = g.chat.History[:n]
		return "", wrapGeminiError(err)
	}

	reply := strings.TrimSpace(extractText(resp))
	if reply == "" {
		g.chat.History = g.chat.History[:n]
		return "", nil
	}

	g.service.logger.Debug("gemini reply",
		zap.String("model", g.model),
		zap.Duration("took", time.Since(start)),
		zap.Int("chars", len(reply)),
	)
	return reply, nil
}

func geminiHistory(turns []chat.Turn) []*genai.Content {
	history := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == models.RoleModel {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return history
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// wrapGeminiError turns SDK failures into a chat.BackendError carrying the
// HTTP status and reason code, whichever transport produced them.
func wrapGeminiError(err error) error {
	be := &chat.BackendError{Err: err}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		be.Reason = aerr.Reason()
		be.Status = aerr.HTTPCode()
		if be.Status <= 0 && aerr.GRPCStatus() != nil {
			be.Status = httpStatusFromCode(aerr.GRPCStatus().Code())
		}
	}

	var gerr *googleapi.Error
	if be.Status <= 0 && errors.As(err, &gerr) {
		be.Status = gerr.Code
		be.Message = gerr.Message
		if be.Reason == "" && len(gerr.Errors) > 0 {
			be.Reason = gerr.Errors[0].Reason
		}
	}

	if be.Status < 0 {
		be.Status = 0
	}
	return be
}

func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return 0
	}
}
