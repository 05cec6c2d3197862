// Package llm adapts langchaingo models to domain.TextGenerator.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/logger"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.2
)

// Generator implements domain.TextGenerator. Every call runs under its own
// timeout; there are no retries.
type Generator struct {
	model       llms.Model
	timeout     time.Duration
	temperature float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds each model call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

func NewGenerator(model llms.Model, opts ...Option) *Generator {
	g := &Generator{model: model, timeout: defaultTimeout, temperature: defaultTemperature}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends a single prompt and returns the raw text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
}

// Chat sends a role-tagged conversation and returns the assistant reply.
func (g *Generator) Chat(ctx context.Context, turns []domain.ChatTurn) (string, error) {
	messages := make([]llms.MessageContent, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llms.TextParts(messageType(t.Role), t.Content))
	}
	return g.call(ctx, messages)
}

func (g *Generator) call(ctx context.Context, messages []llms.MessageContent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		logger.Get().Error("LLM call failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)))
		return "", domain.NewLLMServiceError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewLLMServiceError(errors.New("empty response from model"))
	}

	logger.Get().Debug("LLM call completed", zap.Duration("elapsed", time.Since(start)))
	return resp.Choices[0].Content, nil
}

func messageType(role string) llms.ChatMessageType {
	switch strings.ToLower(role) {
	case domain.ChatRoleSystem:
		return llms.ChatMessageTypeSystem
	case domain.ChatRoleAssistant:
		return llms.ChatMessageTypeAI
	}
	return llms.ChatMessageTypeHuman
}
