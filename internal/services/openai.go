package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/models"
)

// OpenAIService talks to any OpenAI-compatible chat completions endpoint.
// The API is stateless, so each session keeps and replays its own messages.
type OpenAIService struct {
	client   *openai.Client
	logger   *zap.Logger
	rateChan chan struct{}
}

func NewOpenAIService(apiKey, baseURL string, concurrentReqs int, logger *zap.Logger) *OpenAIService {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &OpenAIService{
		client:   openai.NewClientWithConfig(clientConfig),
		logger:   logger,
		rateChan: newRateSlots(concurrentReqs),
	}
}

func (s *OpenAIService) StartSession(_ context.Context, cfg chat.SessionConfig) (chat.RemoteSession, error) {
	if cfg.Model == "" {
		return nil, errors.New("openai: model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(cfg.History)+1)
	if cfg.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: cfg.SystemInstruction,
		})
	}
	for _, t := range cfg.History {
		role := openai.ChatMessageRoleUser
		if t.Role == models.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}

	return &openAISession{service: s, cfg: cfg, messages: messages}, nil
}

type openAISession struct {
	service  *OpenAIService
	cfg      chat.SessionConfig
	messages []openai.ChatCompletionMessage
}

func (o *openAISession) Send(ctx context.Context, text string) (string, error) {
	if err := acquireRate(ctx, o.service.rateChan); err != nil {
		return "", err
	}
	defer releaseRate(o.service.rateChan)

	pending := append(o.messages[:len(o.messages):len(o.messages)], openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	start := time.Now()
	resp, err := o.service.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Messages:    pending,
		MaxTokens:   int(o.cfg.MaxOutputTokens),
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &chat.BackendError{Message: "no choices in completion response"}
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	o.messages = append(pending, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})

	o.service.logger.Debug("openai reply",
		zap.String("model", o.cfg.Model),
		zap.Duration("took", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return reply, nil
}

func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		be := &chat.BackendError{
			Status:  apiErr.HTTPStatusCode,
			Reason:  apiErr.Type,
			Message: apiErr.Message,
			Err:     err,
		}
		// Quota exhaustion arrives as a 429; it must not be retried as throttling.
		if apiErr.Type == "insufficient_quota" || fmt.Sprint(apiErr.Code) == "insufficient_quota" {
			be.Status = 0
			be.Reason = ""
			be.Message = "quota exceeded: " + apiErr.Message
		}
		return be
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &chat.BackendError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	return &chat.BackendError{Err: err}
}
