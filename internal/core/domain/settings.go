package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies a classification model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini || p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// BackendPreference selects which classification backend a run should use.
type BackendPreference string

// Available backend preferences.
const (
	// BackendAuto uses the hosted backend when available, else the heuristic.
	BackendAuto BackendPreference = "auto"

	// BackendLocal requests the local model, falling back to hosted.
	BackendLocal BackendPreference = "local"

	// BackendHosted requests the hosted model only.
	BackendHosted BackendPreference = "hosted"

	// BackendNone disables model classification entirely.
	BackendNone BackendPreference = "none"
)

// IsValid returns true if the preference is recognised.
func (b BackendPreference) IsValid() bool {
	switch b {
	case BackendAuto, BackendLocal, BackendHosted, BackendNone:
		return true
	default:
		return false
	}
}

// LLMSettings holds model provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty means the provider default.
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// OverridePolicy flips negative model answers for pre-filtered repositories.
// It encodes an operator bias, so it is configuration rather than a rule.
type OverridePolicy struct {
	// Enabled turns the policy on.
	Enabled bool

	// Languages is the privileged language set, compared case-insensitively.
	Languages []string

	// MinMatchesWithLanguage is the match count needed when the language is privileged.
	MinMatchesWithLanguage int

	// MinMatches is the match count that overrides regardless of language.
	MinMatches int
}

// DefaultOverridePolicy returns the enabled policy used for the local backend.
func DefaultOverridePolicy() OverridePolicy {
	return OverridePolicy{
		Enabled:                true,
		Languages:              DefaultPrivilegedLanguages(),
		MinMatchesWithLanguage: 1,
		MinMatches:             2,
	}
}

// Apply returns the verdict after the policy has been applied.
// Only unsuitable verdicts are ever changed.
func (p OverridePolicy) Apply(item ScoredRepository, v Verdict) Verdict {
	if !p.Enabled || v.Outcome != OutcomeUnsuitable {
		return v
	}

	language := strings.ToLower(item.Language)
	if language != "" && item.MatchCount >= p.MinMatchesWithLanguage {
		for _, l := range p.Languages {
			if strings.ToLower(l) == language {
				return Suitable(fmt.Sprintf("Contains %s code and matches required keywords", language))
			}
		}
	}

	if p.MinMatches > 0 && item.MatchCount >= p.MinMatches {
		return Suitable(fmt.Sprintf("Matches multiple required keywords (%d)", item.MatchCount))
	}

	return v
}

// SearchSettings configures repository discovery.
type SearchSettings struct {
	// Queries are the broad search terms, run in order.
	Queries []string

	// Languages are searched for every query, in order.
	Languages []string

	// ExtraLanguages maps a query to additional languages searched after Languages.
	ExtraLanguages map[string][]string

	// Sort is the sort field (stars, forks, updated).
	Sort string

	// Order is the sort direction.
	Order string

	// MinStars is the minimum star count.
	MinStars int

	// MaxPages caps pages per (query, language) search.
	MaxPages int

	// RequestsPerSecond enables proactive throttling when positive.
	RequestsPerSecond float64
}

// Plan expands the settings into the ordered list of searches to run:
// query-major, then languages, then per-query extras.
func (s SearchSettings) Plan() []SearchQuery {
	plan := make([]SearchQuery, 0, len(s.Queries)*len(s.Languages))
	for _, q := range s.Queries {
		languages := append(append([]string{}, s.Languages...), s.ExtraLanguages[q]...)
		if len(languages) == 0 {
			languages = []string{""}
		}
		for _, lang := range languages {
			plan = append(plan, SearchQuery{
				Query:    q,
				Language: lang,
				Sort:     s.Sort,
				Order:    s.Order,
				MinStars: s.MinStars,
				MaxPages: s.MaxPages,
			})
		}
	}
	return plan
}

// FilterSettings holds the keyword lists.
type FilterSettings struct {
	// Required keywords raise relevance; order defines MatchingKeywords order.
	Required []string

	// Exclude keywords disqualify an item unconditionally.
	Exclude []string
}

// ClassifySettings configures the classification stage.
type ClassifySettings struct {
	// Analyze enables model classification. When false every item gets the heuristic verdict.
	Analyze bool

	// Backend is the preferred backend.
	Backend BackendPreference

	// Hosted is the hosted provider configuration.
	Hosted LLMSettings

	// Local is the locally served model configuration.
	Local LLMSettings

	// Override is the policy applied to the local backend's negative answers.
	Override OverridePolicy

	// OverrideHosted applies Override to the hosted backend as well.
	OverrideHosted bool

	// PromptsDir holds user-editable prompt templates. Empty uses built-in prompts.
	PromptsDir string
}

// RunSettings configures batching and pacing.
type RunSettings struct {
	// MaxResults caps the number of ranked repositories that get classified.
	MaxResults int

	// BatchSize is the number of classifications between checkpoints.
	BatchSize int

	// Pacing is the delay after each model classification call.
	Pacing time.Duration
}

// OutputSettings lists the output paths. Empty optional paths are skipped.
type OutputSettings struct {
	// JSON is the final JSON array path.
	JSON string

	// CSV is the final tabular path.
	CSV string

	// Checkpoint is the incremental progress path. Defaults to JSON.
	Checkpoint string

	// Database is an optional SQLite results store.
	Database string

	// Metrics is an optional Prometheus textfile path.
	Metrics string
}

// CheckpointPath returns the checkpoint path, defaulting to the JSON output.
func (o OutputSettings) CheckpointPath() string {
	if o.Checkpoint != "" {
		return o.Checkpoint
	}
	return o.JSON
}

// CrawlSettings is the complete configuration surface consumed by the core.
type CrawlSettings struct {
	// GitHubToken authenticates search requests. Optional.
	GitHubToken string

	Search   SearchSettings
	Filter   FilterSettings
	Classify ClassifySettings
	Run      RunSettings
	Output   OutputSettings
}

// Default configuration values.
const (
	DefaultMinStars   = 10
	DefaultMaxPages   = 5
	DefaultMaxResults = 100
	DefaultBatchSize  = 3
	DefaultPacing     = 4 * time.Second
	DefaultSort       = "stars"
	DefaultOrder      = "desc"
	DefaultOutputJSON = "embedded_repos.json"
	DefaultOutputCSV  = "embedded_repos.csv"
)

// DefaultCrawlSettings returns settings matching the built-in embedded-systems profile.
func DefaultCrawlSettings() CrawlSettings {
	return CrawlSettings{
		Search: SearchSettings{
			Queries:        DefaultQueries(),
			Languages:      DefaultLanguages(),
			ExtraLanguages: DefaultExtraLanguages(),
			Sort:           DefaultSort,
			Order:          DefaultOrder,
			MinStars:       DefaultMinStars,
			MaxPages:       DefaultMaxPages,
		},
		Filter: FilterSettings{
			Required: DefaultRequiredKeywords(),
			Exclude:  DefaultExcludeKeywords(),
		},
		Classify: ClassifySettings{
			Analyze:  true,
			Backend:  BackendAuto,
			Hosted:   LLMSettings{Provider: AIProviderGemini},
			Local:    LLMSettings{Provider: AIProviderOllama},
			Override: DefaultOverridePolicy(),
		},
		Run: RunSettings{
			MaxResults: DefaultMaxResults,
			BatchSize:  DefaultBatchSize,
			Pacing:     DefaultPacing,
		},
		Output: OutputSettings{
			JSON: DefaultOutputJSON,
			CSV:  DefaultOutputCSV,
		},
	}
}

// Validate reports configuration that would make a run meaningless.
func (s CrawlSettings) Validate() error {
	switch {
	case len(s.Search.Queries) == 0:
		return fmt.Errorf("%w: at least one search query is required", ErrInvalidInput)
	case s.Search.MaxPages < 1:
		return fmt.Errorf("%w: max_pages must be at least 1", ErrInvalidInput)
	case s.Search.MinStars < 0:
		return fmt.Errorf("%w: min_stars must not be negative", ErrInvalidInput)
	case len(s.Filter.Required) == 0:
		return fmt.Errorf("%w: at least one required keyword is needed", ErrInvalidInput)
	case s.Run.MaxResults < 0:
		return fmt.Errorf("%w: max_results must not be negative", ErrInvalidInput)
	case s.Run.BatchSize < 1:
		return fmt.Errorf("%w: batch_size must be at least 1", ErrInvalidInput)
	case !s.Classify.Backend.IsValid():
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidInput, s.Classify.Backend)
	case s.Classify.Hosted.Provider != "" &&
		(!s.Classify.Hosted.Provider.IsValid() || s.Classify.Hosted.Provider.IsLocal()):
		return fmt.Errorf("%w: %q is not a hosted provider", ErrUnsupportedProvider, s.Classify.Hosted.Provider)
	case s.Output.JSON == "":
		return fmt.Errorf("%w: JSON output path is required", ErrInvalidInput)
	}
	return nil
}
