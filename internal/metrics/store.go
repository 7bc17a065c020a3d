package metrics

import (
	"context"
	"database/sql"
	"time"

	"fprep/internal/shared"
)

// ExecutionMetric records metadata for a single generation pass.
type ExecutionMetric struct {
	Op               string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_metrics (op, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Op, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, ts,
	)
	return err
}

// RecordMeta records metrics directly from shared.GenMeta. Metadata with no
// token usage is skipped.
func (s *Store) RecordMeta(ctx context.Context, meta shared.GenMeta) error {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 {
		return nil
	}
	return s.Record(ctx, MapUsage(meta.Op, meta.Usage, meta.Latency))
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day,
		       SUM(prompt_tokens),
		       SUM(completion_tokens),
		       COUNT(*)
		FROM generation_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var day sql.NullString
		var prompt, completion sql.NullInt64
		if err := rows.Scan(&day, &prompt, &completion, &u.TotalExecution); err != nil {
			return nil, err
		}
		if day.Valid {
			u.Date = day.String
		} else {
			u.Date = "Unknown"
		}
		u.TotalPrompt = int(prompt.Int64)
		u.TotalCompletion = int(completion.Int64)
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MapUsage converts token usage from a generation pass to an ExecutionMetric.
func MapUsage(op string, usage shared.TokenUsage, latency time.Duration) ExecutionMetric {
	return ExecutionMetric{
		Op:               op,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Timestamp:        time.Now().UTC(),
	}
}
