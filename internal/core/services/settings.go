package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyGitHubToken       = "github.token"
	KeyMinStars          = "search.min_stars"
	KeyMaxPages          = "search.max_pages"
	KeySort              = "search.sort"
	KeyOrder             = "search.order"
	KeyQueries           = "search.queries"
	KeyLanguages         = "search.languages"
	KeyRequestsPerSecond = "search.requests_per_second"
	KeyExtraLanguages    = "search.extra_languages."
	KeyRequiredKeywords  = "filter.required_keywords"
	KeyExcludeKeywords   = "filter.exclude_keywords"
	KeyAnalyze           = "classify.analyze"
	KeyBackend           = "classify.backend"
	KeyHostedProvider    = "classify.hosted_provider"
	KeyHostedModel       = "classify.hosted_model"
	KeyHostedURL         = "classify.hosted_url"
	KeyLocalModel        = "classify.local_model"
	KeyLocalURL          = "classify.local_url"
	KeyOverrideEnabled   = "classify.override_enabled"
	KeyOverrideHosted    = "classify.override_hosted"
	KeyOverrideLanguages = "classify.override_languages"
	KeyPromptsDir        = "classify.prompts_dir"
	KeyMaxResults        = "run.max_results"
	KeyBatchSize         = "run.batch_size"
	KeyPacingSeconds     = "run.pacing_seconds"
	KeyOutputJSON        = "output.json"
	KeyOutputCSV         = "output.csv"
	KeyOutputCheckpoint  = "output.checkpoint"
	KeyOutputDB          = "output.db"
	KeyOutputMetrics     = "output.metrics"
)

// Environment variables holding credentials.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// APIKeyEnv returns the environment variable holding the provider's API key.
func APIKeyEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderGemini:
		return EnvGeminiAPIKey
	case domain.AIProviderOpenAI:
		return EnvOpenAIAPIKey
	case domain.AIProviderAnthropic:
		return EnvAnthropicAPIKey
	default:
		return ""
	}
}

// SettingsService resolves crawl settings from the config store and environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Load returns the defaults overlaid with stored values and environment credentials.
// Values are not validated; call CrawlSettings.Validate before running.
func (s *SettingsService) Load() (domain.CrawlSettings, error) {
	settings := domain.DefaultCrawlSettings()

	settings.GitHubToken = s.getString(KeyGitHubToken, "")
	if token := s.getenv(EnvGitHubToken); token != "" {
		settings.GitHubToken = token
	}

	search := &settings.Search
	search.MinStars = s.getInt(KeyMinStars, search.MinStars)
	search.MaxPages = s.getInt(KeyMaxPages, search.MaxPages)
	search.Sort = s.getString(KeySort, search.Sort)
	search.Order = s.getString(KeyOrder, search.Order)
	search.Queries = s.getStrings(KeyQueries, search.Queries)
	search.Languages = s.getStrings(KeyLanguages, search.Languages)
	search.RequestsPerSecond = s.getFloat(KeyRequestsPerSecond, search.RequestsPerSecond)
	if extra := s.extraLanguages(); extra != nil {
		search.ExtraLanguages = extra
	}

	settings.Filter.Required = s.getStrings(KeyRequiredKeywords, settings.Filter.Required)
	settings.Filter.Exclude = s.getStrings(KeyExcludeKeywords, settings.Filter.Exclude)

	classify := &settings.Classify
	classify.Analyze = s.getBool(KeyAnalyze, classify.Analyze)
	classify.Backend = domain.BackendPreference(s.getString(KeyBackend, string(classify.Backend)))
	classify.Hosted.Provider = domain.AIProvider(s.getString(KeyHostedProvider, string(classify.Hosted.Provider)))
	classify.Hosted.Model = s.getString(KeyHostedModel, classify.Hosted.Model)
	classify.Hosted.BaseURL = s.getString(KeyHostedURL, classify.Hosted.BaseURL)
	classify.Hosted.APIKey = s.getenv(APIKeyEnv(classify.Hosted.Provider))
	classify.Local.Model = s.getString(KeyLocalModel, classify.Local.Model)
	classify.Local.BaseURL = s.getString(KeyLocalURL, classify.Local.BaseURL)
	classify.Override.Enabled = s.getBool(KeyOverrideEnabled, classify.Override.Enabled)
	classify.Override.Languages = s.getStrings(KeyOverrideLanguages, classify.Override.Languages)
	classify.OverrideHosted = s.getBool(KeyOverrideHosted, classify.OverrideHosted)
	classify.PromptsDir = s.getString(KeyPromptsDir, classify.PromptsDir)

	run := &settings.Run
	run.MaxResults = s.getInt(KeyMaxResults, run.MaxResults)
	run.BatchSize = s.getInt(KeyBatchSize, run.BatchSize)
	if _, exists := s.configStore.Get(KeyPacingSeconds); exists {
		run.Pacing = time.Duration(s.configStore.GetFloat(KeyPacingSeconds) * float64(time.Second))
	}

	output := &settings.Output
	output.JSON = s.getString(KeyOutputJSON, output.JSON)
	output.CSV = s.getString(KeyOutputCSV, output.CSV)
	output.Checkpoint = s.getString(KeyOutputCheckpoint, output.Checkpoint)
	output.Database = s.getString(KeyOutputDB, output.Database)
	output.Metrics = s.getString(KeyOutputMetrics, output.Metrics)

	return settings, nil
}

// Set validates the value type for known keys and stores it.
func (s *SettingsService) Set(key string, value any) error {
	switch key {
	case KeyBackend:
		if !domain.BackendPreference(fmt.Sprint(value)).IsValid() {
			return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, value)
		}
	case KeyHostedProvider:
		p := domain.AIProvider(fmt.Sprint(value))
		if !p.IsValid() || p.IsLocal() {
			return fmt.Errorf("%w: %q is not a hosted provider", domain.ErrUnsupportedProvider, value)
		}
	case KeyMinStars, KeyMaxPages, KeyMaxResults, KeyBatchSize:
		switch value.(type) {
		case int, int64:
		default:
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// extraLanguages reads search.extra_languages.<query> keys. Nil means none stored.
func (s *SettingsService) extraLanguages() map[string][]string {
	keys := s.configStore.Keys(KeyExtraLanguages)
	if len(keys) == 0 {
		return nil
	}
	extra := make(map[string][]string, len(keys))
	for _, key := range keys {
		query := strings.TrimPrefix(key, KeyExtraLanguages)
		extra[query] = s.configStore.GetStringSlice(key)
	}
	return extra
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}
