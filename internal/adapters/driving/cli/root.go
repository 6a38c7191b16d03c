// Package cli provides the reposift command line interface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposift/internal/adapters/driven/classifier"
	"github.com/custodia-labs/reposift/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reposift/internal/core/services"
	"github.com/custodia-labs/reposift/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "reposift",
	Short: "Find embedded systems repositories on GitHub",
	Long: `reposift searches GitHub for embedded systems repositories, ranks them by
keyword relevance and classifies each one as suitable or not for a training
corpus, using a hosted model, a local Ollama model or a keyword heuristic.

Results are written as JSON, with optional CSV, SQLite and metrics outputs.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.reposift)")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.ExecuteContext(ctx)
}

// openSettings opens the config store and wraps it in the settings service.
func openSettings() (*file.ConfigStore, *services.SettingsService, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	return store, services.NewSettingsService(store), nil
}

// openPrompts opens the prompt store, seeding it with the built-in prompts.
// An empty dir means prompts/ next to the config file.
func openPrompts(store *file.ConfigStore, dir string) (*file.PromptStore, error) {
	if dir == "" {
		dir = filepath.Join(filepath.Dir(store.Path()), "prompts")
	}
	return file.NewPromptStore(dir, classifier.DefaultPrompts())
}
