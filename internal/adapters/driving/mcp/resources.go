package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for reposift resources.
	uriScheme = "reposift://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Crawl runs kept in the results store",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run-records",
		Description: "Classified repositories stored for one run",
		MIMEType:    "application/json",
	}, s.handleRunRecordsResource)
}

// handleRunsResource returns the stored runs, most recent first.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Results == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	runs, err := s.ports.Results.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID        string `json:"id"`
		StartedAt string `json:"started_at"`
		Backend   string `json:"backend"`
		Records   int    `json:"records"`
		Suitable  int    `json:"suitable"`
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runInfo{
			ID:        runs[i].ID,
			StartedAt: runs[i].StartedAt.UTC().Format(time.RFC3339),
			Backend:   runs[i].Backend,
			Records:   runs[i].Records,
			Suitable:  runs[i].Suitable,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleRunRecordsResource returns the records of one run.
func (s *Server) handleRunRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Results == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Results.Records(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(recordInfos(records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling records: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

type recordInfo struct {
	FullName         string   `json:"full_name"`
	HTMLURL          string   `json:"html_url"`
	Stars            int      `json:"stars"`
	MatchCount       int      `json:"keyword_match_count"`
	MatchingKeywords []string `json:"matching_keywords"`
	AIResponse       string   `json:"ai_response"`
}

func recordInfos(records []domain.ClassifiedRecord) []recordInfo {
	infos := make([]recordInfo, len(records))
	for i := range records {
		infos[i] = recordInfo{
			FullName:         records[i].FullName,
			HTMLURL:          records[i].HTMLURL,
			Stars:            records[i].Stars,
			MatchCount:       records[i].MatchCount,
			MatchingKeywords: records[i].MatchingKeywords,
			AIResponse:       records[i].Verdict.String(),
		}
	}
	return infos
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractRunID extracts the run ID from a URI like reposift://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
