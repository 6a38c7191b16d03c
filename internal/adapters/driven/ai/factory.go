// Package ai builds the classification backends from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/reposift/internal/adapters/driven/classifier"
	anthropicllm "github.com/custodia-labs/reposift/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/reposift/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/reposift/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/reposift/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/logger"
)

// pingTimeout is the maximum time to wait for the local model server.
const pingTimeout = 5 * time.Second

// Backends holds the classifiers that initialised. A nil field means that
// backend is unavailable for this run.
type Backends struct {
	Local    *classifier.LLMClassifier
	Hosted   *classifier.LLMClassifier
	Warnings []string // Non-fatal issues that made a backend unavailable.
}

// Close releases all model clients.
func (b *Backends) Close() {
	if b.Local != nil {
		b.Local.Close()
	}
	if b.Hosted != nil {
		b.Hosted.Close()
	}
}

// LocalClassifier returns the local backend as a port, nil when unavailable.
func (b *Backends) LocalClassifier() driven.Classifier {
	if b.Local == nil {
		return nil
	}
	return b.Local
}

// HostedClassifier returns the hosted backend as a port, nil when unavailable.
func (b *Backends) HostedClassifier() driven.Classifier {
	if b.Hosted == nil {
		return nil
	}
	return b.Hosted
}

// Build initialises the backends a run may need. The local backend is only
// probed when it was requested. Failures are collected as warnings.
func Build(ctx context.Context, cfg domain.ClassifySettings, prompts driven.PromptStore) *Backends {
	b := &Backends{}
	if !cfg.Analyze || cfg.Backend == domain.BackendNone {
		return b
	}

	if cfg.Backend == domain.BackendLocal {
		local, err := NewLocal(ctx, cfg, prompts)
		if err != nil {
			b.warn(err)
		} else {
			b.Local = local
		}
	}

	hosted, err := NewHosted(ctx, cfg, prompts)
	if err != nil {
		b.warn(err)
	} else {
		b.Hosted = hosted
	}

	return b
}

func (b *Backends) warn(err error) {
	logger.Warn("%v", err)
	b.Warnings = append(b.Warnings, err.Error())
}

// NewLocal creates the local classifier and checks that the model server answers.
func NewLocal(ctx context.Context, cfg domain.ClassifySettings, prompts driven.PromptStore) (*classifier.LLMClassifier, error) {
	settings := cfg.Local
	settings.Provider = domain.AIProviderOllama

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: Ollama service not available (%w)", domain.ErrBackendUnavailable, err)
	}

	logger.Info("Using local model %s", svc.ModelName())
	return classifier.NewLocal(svc, prompts, cfg.Override), nil
}

// NewHosted creates the hosted classifier. Hosted providers are not pinged;
// a successful client setup counts as available.
func NewHosted(ctx context.Context, cfg domain.ClassifySettings, prompts driven.PromptStore) (*classifier.LLMClassifier, error) {
	settings := cfg.Hosted
	if settings.Provider == "" {
		settings.Provider = domain.AIProviderGemini
	}
	if !settings.Provider.RequiresAPIKey() {
		return nil, fmt.Errorf("%w: %w: %s is not a hosted provider",
			domain.ErrBackendUnavailable, domain.ErrUnsupportedProvider, settings.Provider)
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured for %s", domain.ErrBackendUnavailable, settings.Provider)
	}

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	var override domain.OverridePolicy
	if cfg.OverrideHosted {
		override = cfg.Override
	}

	logger.Info("Using %s model %s", settings.Provider, svc.ModelName())
	return classifier.NewHosted(svc, settings.Provider, prompts, override), nil
}

// CreateLLMService creates the model client for settings.
func CreateLLMService(ctx context.Context, settings domain.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}
