package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/logger"
)

// Ensure LLMClassifier implements the interface.
var _ driven.Classifier = (*LLMClassifier)(nil)

// Retry defaults.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 3 * time.Second

	// LocalMaxTokens bounds the local model's answer length.
	LocalMaxTokens = 200
)

// SystemInstruction is sent with every prompt in the provider's system slot.
// The prompt templates stay editable; the answer format does not.
const SystemInstruction = `You screen GitHub repositories for an embedded systems code corpus. ` +
	`Reply on a single line that starts with "Yes -" or "No -" followed by a short reason.`

// Options configures an LLMClassifier.
type Options struct {
	// Provider labels the backend in its name.
	Provider domain.AIProvider

	// PromptName selects the prompt template.
	PromptName string

	// Prompts supplies user-editable templates. Nil uses DefaultPrompts.
	Prompts driven.PromptStore

	// Override is applied to unsuitable answers.
	Override domain.OverridePolicy

	// MaxTokens bounds the answer. Zero leaves the provider default.
	MaxTokens int

	// Attempts is the number of generation attempts (default 3).
	Attempts int

	// Backoff is the fixed wait after a failed non-final attempt (default 3s).
	Backoff time.Duration
}

// LLMClassifier classifies repositories with a language model.
type LLMClassifier struct {
	llm        driven.LLMService
	provider   domain.AIProvider
	promptName string
	prompts    driven.PromptStore
	override   domain.OverridePolicy
	maxTokens  int
	attempts   int
	backoff    time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewLLMClassifier creates a classifier over llm.
func NewLLMClassifier(llm driven.LLMService, opts Options) *LLMClassifier {
	if opts.PromptName == "" {
		opts.PromptName = driven.PromptClassifyHosted
	}
	if opts.Attempts < 1 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Backoff == 0 {
		opts.Backoff = DefaultBackoff
	}

	return &LLMClassifier{
		llm:        llm,
		provider:   opts.Provider,
		promptName: opts.PromptName,
		prompts:    opts.Prompts,
		override:   opts.Override,
		maxTokens:  opts.MaxTokens,
		attempts:   opts.Attempts,
		backoff:    opts.Backoff,
		sleep:      sleepContext,
	}
}

// NewHosted creates a classifier for a hosted provider using the hosted prompt.
func NewHosted(llm driven.LLMService, provider domain.AIProvider, prompts driven.PromptStore, override domain.OverridePolicy) *LLMClassifier {
	return NewLLMClassifier(llm, Options{
		Provider:   provider,
		PromptName: driven.PromptClassifyHosted,
		Prompts:    prompts,
		Override:   override,
	})
}

// NewLocal creates a classifier for a locally served model using the local prompt.
func NewLocal(llm driven.LLMService, prompts driven.PromptStore, override domain.OverridePolicy) *LLMClassifier {
	return NewLLMClassifier(llm, Options{
		Provider:   domain.AIProviderOllama,
		PromptName: driven.PromptClassifyLocal,
		Prompts:    prompts,
		Override:   override,
		MaxTokens:  LocalMaxTokens,
	})
}

// Name identifies the backend as provider/model.
func (c *LLMClassifier) Name() string {
	return fmt.Sprintf("%s/%s", c.provider, c.llm.ModelName())
}

// Close releases the underlying model client.
func (c *LLMClassifier) Close() error {
	return c.llm.Close()
}

// Classify asks the model about item. Ambiguous answers return an error
// wrapping domain.ErrAmbiguousResponse.
func (c *LLMClassifier) Classify(ctx context.Context, item domain.ScoredRepository) (domain.Verdict, error) {
	prompt, err := c.prompt(item)
	if err != nil {
		return domain.Verdict{}, err
	}

	answer, err := c.generate(ctx, prompt)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("%s: %w", c.Name(), err)
	}

	v, ok := ParseVerdict(answer)
	if !ok {
		return domain.Verdict{}, fmt.Errorf("%w: %q", domain.ErrAmbiguousResponse, truncate(answer, maxReasonLength))
	}
	return c.override.Apply(item, v), nil
}

// generate calls the model with a fixed retry budget and returns the last error.
func (c *LLMClassifier) generate(ctx context.Context, prompt string) (string, error) {
	opts := driven.GenerateOptions{System: SystemInstruction, MaxTokens: c.maxTokens}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		answer, err := c.llm.Generate(ctx, prompt, opts)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.Debug("Attempt %d/%d failed: %v", attempt, c.attempts, err)
		if attempt < c.attempts {
			if err := c.sleep(ctx, c.backoff); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", c.attempts, lastErr)
}

func (c *LLMClassifier) prompt(item domain.ScoredRepository) (string, error) {
	text, ok := DefaultPrompts()[c.promptName]
	if c.prompts != nil {
		loaded, err := c.prompts.Load(c.promptName)
		if err == nil {
			text, ok = loaded, true
		} else {
			logger.Debug("Prompt %s unavailable, using built-in: %v", c.promptName, err)
		}
	}
	if !ok {
		return "", fmt.Errorf("%w: unknown prompt %q", domain.ErrInvalidInput, c.promptName)
	}
	return renderPrompt(c.promptName, text, item)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
