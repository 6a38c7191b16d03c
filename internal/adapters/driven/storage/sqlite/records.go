package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/reposift/internal/core/domain"
	"github.com/custodia-labs/reposift/internal/core/ports/driven"
)

// runWriter implements driven.RecordWriter for one run.
type runWriter struct {
	store *Store
	run   domain.RunInfo
}

var _ driven.RecordWriter = (*runWriter)(nil)

// Write replaces the run's stored records in a single transaction.
func (w *runWriter) Write(ctx context.Context, records []domain.ClassifiedRecord) error {
	tx, err := w.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, backend) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET backend = excluded.backend
	`, w.run.ID, w.run.StartedAt.UTC(), w.run.Backend)
	if err != nil {
		return fmt.Errorf("%w: saving run: %w", domain.ErrPersistence, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE run_id = ?", w.run.ID); err != nil {
		return fmt.Errorf("%w: clearing records: %w", domain.ErrPersistence, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			run_id, position, full_name, name, html_url, description, language,
			stars, forks, updated_at, topics, match_count, matching_keywords,
			outcome, reason, fallback, ai_response
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %w", domain.ErrPersistence, err)
	}
	defer stmt.Close()

	for i, rec := range records {
		topics, err := marshalStrings(rec.Topics)
		if err != nil {
			return fmt.Errorf("%w: marshalling topics: %w", domain.ErrPersistence, err)
		}
		keywords, err := marshalStrings(rec.MatchingKeywords)
		if err != nil {
			return fmt.Errorf("%w: marshalling keywords: %w", domain.ErrPersistence, err)
		}

		var updatedAt sql.NullTime
		if !rec.UpdatedAt.IsZero() {
			updatedAt = sql.NullTime{Time: rec.UpdatedAt.UTC(), Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			w.run.ID, i, rec.FullName, rec.Name, rec.HTMLURL, rec.Description, rec.Language,
			rec.Stars, rec.Forks, updatedAt, topics, rec.MatchCount, keywords,
			string(rec.Verdict.Outcome), rec.Verdict.Reason, rec.Verdict.Fallback, rec.Verdict.String(),
		)
		if err != nil {
			return fmt.Errorf("%w: inserting %s: %w", domain.ErrPersistence, rec.FullName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListRuns returns stored runs with record counts, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.backend,
			COUNT(rec.position),
			COALESCE(SUM(CASE WHEN rec.outcome = ? THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN records rec ON rec.run_id = r.id
		GROUP BY r.id, r.started_at, r.backend
		ORDER BY r.started_at DESC, r.id
	`, string(domain.OutcomeSuitable))
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var run domain.RunSummary
		var startedAt sql.NullTime
		if err := rows.Scan(&run.ID, &startedAt, &run.Backend, &run.Records, &run.Suitable); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Records returns the records stored for a run in ranked order.
// An unknown run yields no records and no error.
func (s *Store) Records(ctx context.Context, runID string) ([]domain.ClassifiedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT full_name, name, html_url, description, language, stars, forks,
			updated_at, topics, match_count, matching_keywords, outcome, reason, fallback
		FROM records WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.ClassifiedRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (domain.ClassifiedRecord, error) {
	var rec domain.ClassifiedRecord
	var updatedAt sql.NullTime
	var topics, keywords, outcome string

	if err := rows.Scan(&rec.FullName, &rec.Name, &rec.HTMLURL, &rec.Description, &rec.Language,
		&rec.Stars, &rec.Forks, &updatedAt, &topics, &rec.MatchCount, &keywords,
		&outcome, &rec.Verdict.Reason, &rec.Verdict.Fallback); err != nil {
		return rec, fmt.Errorf("scanning record: %w", err)
	}

	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	if err := json.Unmarshal([]byte(topics), &rec.Topics); err != nil {
		return rec, fmt.Errorf("unmarshalling topics: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &rec.MatchingKeywords); err != nil {
		return rec, fmt.Errorf("unmarshalling keywords: %w", err)
	}
	rec.Verdict.Outcome = domain.Outcome(outcome)
	return rec, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	return string(data), err
}
