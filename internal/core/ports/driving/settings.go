package driving

import "github.com/custodia-labs/reposift/internal/core/domain"

// SettingsService resolves the crawl configuration.
type SettingsService interface {
	// Load overlays stored configuration and environment credentials on the
	// built-in defaults.
	Load() (domain.CrawlSettings, error)

	// Set validates and stores a single configuration key.
	Set(key string, value any) error
}
