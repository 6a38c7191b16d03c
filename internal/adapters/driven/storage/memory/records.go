package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

// Ensure RecordWriter implements the interface.
var _ driven.RecordWriter = (*RecordWriter)(nil)

// RecordWriter keeps the most recent record set in memory.
// It backs crawl --dry-run and tests.
type RecordWriter struct {
	mu      sync.RWMutex
	records []domain.ClassifiedRecord
	writes  int
}

// NewRecordWriter creates an empty in-memory record writer.
func NewRecordWriter() *RecordWriter {
	return &RecordWriter{}
}

// Write replaces the stored records with a copy of records.
func (w *RecordWriter) Write(_ context.Context, records []domain.ClassifiedRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append([]domain.ClassifiedRecord(nil), records...)
	w.writes++
	return nil
}

// Append adds one record to the stored set.
func (w *RecordWriter) Append(record domain.ClassifiedRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append(w.records, record)
	w.writes++
}

// Records returns a copy of the stored records.
func (w *RecordWriter) Records() []domain.ClassifiedRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.ClassifiedRecord(nil), w.records...)
}

// Writes returns how many times the record set was written.
func (w *RecordWriter) Writes() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.writes
}
