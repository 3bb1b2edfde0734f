// Package describe генерирует описания товаров внешней текстовой моделью.
// Ошибки до вызывающего не доходят: вместо них возвращается фиксированный текст.
package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// FallbackEmpty модель ответила пустым текстом
	FallbackEmpty = "No description generated."
	// FallbackError вызов не удался
	FallbackError = "Could not generate description at this time."
)

// Generator описание по названию и категории товара
type Generator interface {
	Describe(ctx context.Context, name, category string) string
}

// Prompt текст запроса к модели; название и категория подставляются как есть
func Prompt(name, category string) string {
	return fmt.Sprintf("Write a compelling and professional e-commerce product description for a product named \"%s\" in the \"%s\" category. Keep it under 60 words.", name, category)
}

// Config параметры OpenAI-совместимого клиента
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client один запрос chat completion на описание, без повторов и стриминга
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

var _ Generator = (*Client)(nil)

func (c *Client) Describe(ctx context.Context, name, category string) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(name, category)},
		},
	})
	if err != nil {
		c.logger.Warn("description generation failed",
			slog.String("product", name), slog.String("error", err.Error()))
		return FallbackError
	}
	if len(resp.Choices) == 0 {
		return FallbackEmpty
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// Static отвечает фиксированным текстом, когда ключ API не задан
type Static string

func (s Static) Describe(context.Context, string, string) string {
	if s == "" {
		return FallbackEmpty
	}
	return string(s)
}
