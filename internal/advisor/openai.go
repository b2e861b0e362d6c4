package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the subset of *openai.Client used by OpenAIAdvisor.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAdvisor answers through the chat completions API.
type OpenAIAdvisor struct {
	client    ChatClient
	model     string
	timeout   time.Duration
	maxTokens int
	logger    zerolog.Logger
}

// New returns an OpenAIAdvisor when an API key is configured and Unavailable otherwise.
func New(cfg config.OpenAIConfig, logger zerolog.Logger) Advisor {
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn().Msg("OPENAI_API_KEY not set; advisor disabled")
		return Unavailable{}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return NewOpenAIAdvisor(openai.NewClientWithConfig(clientCfg), cfg.Model, cfg.Timeout, logger)
}

func NewOpenAIAdvisor(client ChatClient, model string, timeout time.Duration, logger zerolog.Logger) *OpenAIAdvisor {
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIAdvisor{
		client:    client,
		model:     model,
		timeout:   timeout,
		maxTokens: 800,
		logger:    logger.With().Str("component", "advisor").Logger(),
	}
}

func (a *OpenAIAdvisor) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return domain.Answer{}, ErrEmptyQuestion
	}

	// tie the model call to the incoming request
	askCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
	}
	if len(q.Documents) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: documentContext(q.Documents),
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})

	started := time.Now()
	resp, err := a.client.CreateChatCompletion(askCtx, openai.ChatCompletionRequest{
		Model:     a.model,
		Messages:  messages,
		MaxTokens: a.maxTokens,
		User:      q.Owner,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			a.logger.Error().Err(err).Int("status", apiErr.HTTPStatusCode).Str("owner", q.Owner).Msg("chat completion rejected")
		} else {
			a.logger.Error().Err(err).Str("owner", q.Owner).Msg("chat completion failed")
		}
		return domain.Answer{}, fmt.Errorf("advisor request failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.Answer{}, errors.New("advisor returned an empty response")
	}

	a.logger.Info().
		Str("owner", q.Owner).
		Str("model", resp.Model).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("elapsed", time.Since(started)).
		Msg("advisor answered")

	return domain.Answer{
		Text:      strings.TrimSpace(resp.Choices[0].Message.Content),
		Citations: citationsFor(q.Documents),
		Model:     resp.Model,
	}, nil
}

func documentContext(docs []domain.StoredObject) string {
	var b strings.Builder
	b.WriteString("The user has uploaded these bank statements. Refer to them by file name when relevant:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "- %s (uploaded %s, %d bytes)\n", d.FileName, d.UploadedAt.Format("2006-01-02"), d.Size)
	}
	return b.String()
}

func citationsFor(docs []domain.StoredObject) []domain.Citation {
	if len(docs) == 0 {
		return nil
	}
	citations := make([]domain.Citation, 0, len(docs))
	for _, d := range docs {
		citations = append(citations, domain.Citation{Source: d.Key, Excerpt: d.FileName})
	}
	return citations
}
