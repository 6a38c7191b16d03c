package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposift/internal/adapters/driven/ai"
	"github.com/custodia-labs/reposift/internal/adapters/driven/classifier"
	"github.com/custodia-labs/reposift/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reposift/internal/adapters/driving/mcp"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
	"github.com/custodia-labs/reposift/internal/core/ports/driving"
	"github.com/custodia-labs/reposift/internal/core/services"
	"github.com/custodia-labs/reposift/internal/logger"
	"github.com/custodia-labs/reposift/internal/metrics"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server offers two tools: score_repository runs the keyword filter over a
repository description and classify_repository also classifies it, optionally
with an explicit backend (local, hosted or heuristic). When a results store is
configured, stored runs are available as reposift://runs resources.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead, which also serves Prometheus metrics on /metrics.

Examples:
  # Stdio mode (default)
  reposift mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  reposift mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port == 0 {
		// stdout carries the protocol.
		logger.SetQuiet(true)
	}

	store, settingsService, err := openSettings()
	if err != nil {
		return err
	}
	settings, err := settingsService.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rec := metrics.New()

	// Both backends are probed so callers can pick either one.
	cfg := settings.Classify
	backends := &ai.Backends{}
	if cfg.Analyze {
		prompts, err := openPrompts(store, cfg.PromptsDir)
		if err != nil {
			return err
		}
		// Edited prompt files apply to the next classification.
		if err := prompts.Watch(ctx); err != nil {
			logger.Warn("Prompt changes will not be picked up: %v", err)
		}
		if backends.Local, err = ai.NewLocal(ctx, cfg, prompts); err != nil {
			logger.Warn("%v", err)
		}
		if backends.Hosted, err = ai.NewHosted(ctx, cfg, prompts); err != nil {
			logger.Warn("%v", err)
		}
	}
	defer backends.Close()

	filter := services.NewKeywordFilter(settings.Filter.Required, settings.Filter.Exclude)
	scorer := func(c driven.Classifier) driving.ScoringService {
		return services.NewScoringService(filter, services.NewOrchestrator(c, rec))
	}

	ports := &mcp.Ports{
		Scoring: scorer(services.SelectBackend(services.BackendOptions{
			Analyze:    cfg.Analyze,
			Preference: cfg.Backend,
			Local:      backends.LocalClassifier(),
			Hosted:     backends.HostedClassifier(),
		})),
		Backends: map[string]driving.ScoringService{
			services.HeuristicBackend: scorer(nil),
			"local":                   scorer(availableOr(backends.LocalClassifier(), "ollama", "Ollama service not available")),
			"hosted":                  scorer(availableOr(backends.HostedClassifier(), string(cfg.Hosted.Provider), "hosted backend not configured")),
		},
	}

	if settings.Output.Database != "" {
		db, err := sqlite.NewStore(settings.Output.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		ports.Results = db
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s/mcp\n", addr)
		return server.RunHTTP(ctx, addr, map[string]http.Handler{"/metrics": rec.Handler()})
	}

	return server.Run(ctx)
}

// availableOr returns c, or a stand-in that answers unavailable.
func availableOr(c driven.Classifier, backend, reason string) driven.Classifier {
	if c != nil {
		return c
	}
	return classifier.Unavailable{Backend: backend, Reason: reason}
}
