package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"course-compass/internal/config"
)

// Supported providers
const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// NewModel builds the langchaingo model selected by cfg.Provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		httpClient := &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return model, nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is required for provider %q", cfg.Provider)
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return model, nil

	case ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is required for provider %q", cfg.Provider)
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}
		return model, nil
	}
	return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
}
