package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposift/internal/adapters/driven/ai"
	"github.com/custodia-labs/reposift/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/reposift/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/reposift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reposift/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reposift/internal/connectors/github"
	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/services"
	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Search, filter and classify repositories",
	Long: `Runs the full pipeline: searches GitHub for every configured query and
language, removes duplicates, ranks by keyword matches and classifies each
repository. Progress is checkpointed to the JSON output after every batch.

Press Ctrl+C to stop; the last checkpoint is kept.`,
	Args: cobra.NoArgs,
	RunE: runCrawl,
}

func init() {
	addCrawlFlags(crawlCmd)
	rootCmd.AddCommand(crawlCmd)
}

func addCrawlFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("analyze", true, "classify with a model (false uses the keyword heuristic only)")
	f.String("backend", "", "classification backend: auto, local, hosted or none")
	f.String("provider", "", "hosted provider: gemini, openai or anthropic")
	f.String("token", "", "GitHub token (default $GITHUB_TOKEN)")
	f.IntP("max-results", "n", 0, "classify at most this many ranked repositories (0 = all)")
	f.Int("batch-size", 0, "classifications between checkpoints")
	f.Float64("pacing", -1, "seconds to wait after each model call")
	f.StringP("output", "o", "", "JSON output path")
	f.String("csv", "", "CSV output path")
	f.String("db", "", "SQLite results store path")
	f.String("metrics", "", "Prometheus textfile path")
	f.Bool("dry-run", false, "keep results in memory and only print the summary")
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	store, settingsService, err := openSettings()
	if err != nil {
		return err
	}

	settings, err := settingsService.Load()
	if err != nil {
		return err
	}
	if err := applyCrawlFlags(cmd, &settings); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		settings.Output = domain.OutputSettings{}
	}

	rec := metrics.New()
	crawl, cleanup, err := buildCrawl(ctx, store, settings, rec)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := crawl.Crawl(ctx)
	if report != nil && len(report.Records) > 0 {
		printSummary(cmd.OutOrStdout(), report)
	}

	switch {
	case errors.Is(err, context.Canceled):
		if !dryRun {
			logger.Warn("Interrupted, the last checkpoint is in %s", settings.Output.CheckpointPath())
		}
		return nil
	case err != nil:
		return err
	case dryRun:
		return nil
	}

	logger.Info("Saved %d repositories to %s", len(report.Records), settings.Output.JSON)
	return nil
}

// applyCrawlFlags overlays explicitly set flags on the loaded settings.
func applyCrawlFlags(cmd *cobra.Command, s *domain.CrawlSettings) error {
	f := cmd.Flags()

	if f.Changed("analyze") {
		s.Classify.Analyze, _ = f.GetBool("analyze")
	}
	if f.Changed("backend") {
		v, _ := f.GetString("backend")
		s.Classify.Backend = domain.BackendPreference(v)
	}
	if f.Changed("provider") {
		v, _ := f.GetString("provider")
		s.Classify.Hosted.Provider = domain.AIProvider(v)
		s.Classify.Hosted.APIKey = os.Getenv(services.APIKeyEnv(s.Classify.Hosted.Provider))
	}
	if f.Changed("token") {
		s.GitHubToken, _ = f.GetString("token")
	}
	if f.Changed("max-results") {
		s.Run.MaxResults, _ = f.GetInt("max-results")
	}
	if f.Changed("batch-size") {
		s.Run.BatchSize, _ = f.GetInt("batch-size")
	}
	if f.Changed("pacing") {
		secs, _ := f.GetFloat64("pacing")
		if secs < 0 {
			return fmt.Errorf("%w: pacing must not be negative", domain.ErrInvalidInput)
		}
		s.Run.Pacing = time.Duration(secs * float64(time.Second))
	}
	if f.Changed("output") {
		s.Output.JSON, _ = f.GetString("output")
	}
	if f.Changed("csv") {
		s.Output.CSV, _ = f.GetString("csv")
	}
	if f.Changed("db") {
		s.Output.Database, _ = f.GetString("db")
	}
	if f.Changed("metrics") {
		s.Output.Metrics, _ = f.GetString("metrics")
	}
	return nil
}

// buildCrawl wires the search client, classification backend and writers.
func buildCrawl(
	ctx context.Context,
	store *file.ConfigStore,
	settings domain.CrawlSettings,
	rec *metrics.Recorder,
) (*services.CrawlService, func(), error) {
	limiter := github.NewRateLimiter(settings.Search.RequestsPerSecond, rec)
	client := github.NewClientWithToken(ctx, settings.GitHubToken, limiter)
	if settings.GitHubToken == "" {
		logger.Warn("No GitHub token configured, search runs with the unauthenticated quota")
	}
	searcher := github.NewSearcher(client, rec)

	var backends *ai.Backends
	if settings.Classify.Analyze {
		prompts, err := openPrompts(store, settings.Classify.PromptsDir)
		if err != nil {
			return nil, nil, err
		}
		backends = ai.Build(ctx, settings.Classify, prompts)
	} else {
		backends = &ai.Backends{}
	}

	backend := services.SelectBackend(services.BackendOptions{
		Analyze:    settings.Classify.Analyze,
		Preference: settings.Classify.Backend,
		Local:      backends.LocalClassifier(),
		Hosted:     backends.HostedClassifier(),
	})
	orchestrator := services.NewOrchestrator(backend, rec)

	crawl := services.NewCrawlService(searcher, orchestrator, settings)
	crawl.SetMetrics(rec)
	if settings.Output.JSON == "" {
		// Dry run: results stay in memory.
		crawl.SetCheckpoint(memory.NewRecordWriter())
		crawl.AddOutput(memory.NewRecordWriter())
	} else {
		crawl.SetCheckpoint(filestore.NewJSONWriter(settings.Output.CheckpointPath()))
		crawl.AddOutput(filestore.NewJSONWriter(settings.Output.JSON))
	}
	if settings.Output.CSV != "" {
		crawl.AddOutput(filestore.NewCSVWriter(settings.Output.CSV))
	}

	cleanup := backends.Close
	if settings.Output.Database != "" {
		db, err := sqlite.NewStore(settings.Output.Database)
		if err != nil {
			backends.Close()
			return nil, nil, err
		}
		crawl.SetRunStore(db)
		cleanup = func() {
			backends.Close()
			db.Close()
		}
	}

	return crawl, cleanup, nil
}
