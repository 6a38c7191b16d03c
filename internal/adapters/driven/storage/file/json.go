package file

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

// Ensure JSONWriter implements the interface.
var _ driven.RecordWriter = (*JSONWriter)(nil)

// jsonRecord is the persisted shape of a classified repository.
type jsonRecord struct {
	Name              string   `json:"name"`
	FullName          string   `json:"full_name"`
	HTMLURL           string   `json:"html_url"`
	Description       string   `json:"description"`
	Language          string   `json:"language"`
	Stars             int      `json:"stars"`
	Forks             int      `json:"forks"`
	LastUpdated       string   `json:"last_updated"`
	Topics            []string `json:"topics"`
	KeywordMatchCount int      `json:"keyword_match_count"`
	MatchingKeywords  []string `json:"matching_keywords"`
	AIResponse        string   `json:"ai_response"`
}

// JSONWriter writes records as an indented JSON array.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Path returns the target file path.
func (w *JSONWriter) Path() string {
	return w.path
}

// Write atomically replaces the file with records.
func (w *JSONWriter) Write(_ context.Context, records []domain.ClassifiedRecord) error {
	out := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, toJSONRecord(rec))
	}

	return writeAtomic(w.path, func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	})
}

func toJSONRecord(rec domain.ClassifiedRecord) jsonRecord {
	var updated string
	if !rec.UpdatedAt.IsZero() {
		updated = rec.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return jsonRecord{
		Name:              rec.Name,
		FullName:          rec.FullName,
		HTMLURL:           rec.HTMLURL,
		Description:       rec.Description,
		Language:          rec.Language,
		Stars:             rec.Stars,
		Forks:             rec.Forks,
		LastUpdated:       updated,
		Topics:            nonNil(rec.Topics),
		KeywordMatchCount: rec.MatchCount,
		MatchingKeywords:  nonNil(rec.MatchingKeywords),
		AIResponse:        rec.Verdict.String(),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
