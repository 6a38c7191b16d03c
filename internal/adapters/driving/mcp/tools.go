package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

// RepositoryInput describes one repository as search would return it.
type RepositoryInput struct {
	FullName    string   `json:"full_name" jsonschema:"repository identity in owner/name form"`
	Name        string   `json:"name,omitempty" jsonschema:"display name (defaults to the part after the slash)"`
	Description string   `json:"description,omitempty" jsonschema:"repository description"`
	Language    string   `json:"language,omitempty" jsonschema:"primary language"`
	Stars       int      `json:"stars,omitempty" jsonschema:"stargazer count"`
	Topics      []string `json:"topics,omitempty" jsonschema:"topic tags"`
}

// ClassifyInput is the input schema for the classify_repository tool.
type ClassifyInput struct {
	RepositoryInput
	Backend string `json:"backend,omitempty" jsonschema:"backend to use: local, hosted or heuristic (default: configured backend)"`
}

// ScoreOutput is the output schema for the score_repository tool.
type ScoreOutput struct {
	Passed           bool     `json:"passed"`
	MatchCount       int      `json:"keyword_match_count"`
	MatchingKeywords []string `json:"matching_keywords"`
}

// ClassifyOutput is the output schema for the classify_repository tool.
type ClassifyOutput struct {
	ScoreOutput
	Backend    string `json:"backend,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"`
	AIResponse string `json:"ai_response,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_repository",
		Description: "Run the keyword filter over one repository and report matching keywords",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_repository",
		Description: "Score one repository and, if it passes the filter, classify its suitability",
	}, s.handleClassify)
}

// handleScore handles the score_repository tool invocation.
func (s *Server) handleScore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RepositoryInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	repo, err := input.repository()
	if err != nil {
		return nil, ScoreOutput{}, err
	}

	item, ok := s.ports.Scoring.Score(repo)
	return nil, scoreOutput(item, ok), nil
}

// handleClassify handles the classify_repository tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	repo, err := input.repository()
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	svc, err := s.ports.scorer(input.Backend)
	if err != nil {
		return nil, ClassifyOutput{}, fmt.Errorf("%w: %q", err, input.Backend)
	}

	record, ok := svc.Classify(ctx, repo)
	output := ClassifyOutput{ScoreOutput: scoreOutput(record.ScoredRepository, ok)}
	if !ok {
		return nil, output, nil
	}

	output.Backend = svc.BackendName()
	output.Outcome = record.Verdict.Outcome.String()
	output.Fallback = record.Verdict.Fallback
	output.AIResponse = record.Verdict.String()
	return nil, output, nil
}

func (in RepositoryInput) repository() (domain.Repository, error) {
	if in.FullName == "" {
		return domain.Repository{}, fmt.Errorf("%w: full_name is required", domain.ErrInvalidInput)
	}
	name := in.Name
	if name == "" {
		name = in.FullName[strings.LastIndex(in.FullName, "/")+1:]
	}
	return domain.Repository{
		FullName:    in.FullName,
		Name:        name,
		HTMLURL:     "https://github.com/" + in.FullName,
		Description: in.Description,
		Language:    in.Language,
		Stars:       in.Stars,
		Topics:      in.Topics,
	}, nil
}

func scoreOutput(item domain.ScoredRepository, passed bool) ScoreOutput {
	keywords := item.MatchingKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return ScoreOutput{
		Passed:           passed,
		MatchCount:       item.MatchCount,
		MatchingKeywords: keywords,
	}
}
