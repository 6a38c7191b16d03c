package file

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

// Ensure CSVWriter implements the interface.
var _ driven.RecordWriter = (*CSVWriter)(nil)

// listSeparator joins list columns.
const listSeparator = ", "

// csvHeader defines the CSV column order.
var csvHeader = []string{
	"github_url",
	"name",
	"description",
	"language",
	"stars",
	"keyword_matches",
	"matching_keywords",
	"topics",
	"ai_response",
}

// CSVWriter writes records as a CSV table with a header row.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a writer targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the target file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// Write atomically replaces the file with records.
func (w *CSVWriter) Write(_ context.Context, records []domain.ClassifiedRecord) error {
	return writeAtomic(w.path, func(f io.Writer) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, rec := range records {
			if err := cw.Write(csvRow(rec)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func csvRow(rec domain.ClassifiedRecord) []string {
	return []string{
		rec.HTMLURL,
		rec.Name,
		rec.Description,
		rec.Language,
		strconv.Itoa(rec.Stars),
		strconv.Itoa(rec.MatchCount),
		strings.Join(rec.MatchingKeywords, listSeparator),
		strings.Join(rec.Topics, listSeparator),
		rec.Verdict.String(),
	}
}
