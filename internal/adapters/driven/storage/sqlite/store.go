package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ronin/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// DBFile is the database file name inside the data directory.
const DBFile = "history.db"

// Store is the SQLite-backed analysis history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the history database in dataDir.
// If dataDir is empty, defaults to ~/.ronin.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ronin")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every .up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveRun records a completed run. Saving the same run ID again replaces it.
func (s *Store) SaveRun(ctx context.Context, result *domain.AnalysisResult) error {
	if result == nil || result.RunID == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	sources, err := json.Marshal(nonNil(result.DataSourcesUsed))
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}
	summary := result.Summarise()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, analyzed_at, total_signals, narrative_count, top_narrative, sources, agent_version, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			analyzed_at = excluded.analyzed_at,
			total_signals = excluded.total_signals,
			narrative_count = excluded.narrative_count,
			top_narrative = excluded.top_narrative,
			sources = excluded.sources,
			agent_version = excluded.agent_version,
			result = excluded.result
	`, result.RunID, result.AnalyzedAt.UnixNano(), summary.TotalSignals, summary.NarrativeCount,
		summary.TopNarrative, string(sources), summary.AgentVersion, string(payload))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM narratives WHERE run_id = ?", result.RunID); err != nil {
		return fmt.Errorf("clearing narratives: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO narratives (run_id, narrative_id, rank, confidence, trend, signal_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing narrative insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range result.Narratives {
		if _, err := stmt.ExecContext(ctx, result.RunID, n.ID, i, n.Confidence, string(n.Trend), len(n.Signals)); err != nil {
			return fmt.Errorf("saving narrative %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit run summaries, newest first. Zero means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, analyzed_at, total_signals, narrative_count, top_narrative, sources, agent_version
		FROM runs ORDER BY analyzed_at DESC, rowid DESC LIMIT ?
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.RunSummary{}
	for rows.Next() {
		var r domain.RunSummary
		var analyzedAt int64
		var sources string
		if err := rows.Scan(&r.RunID, &analyzedAt, &r.TotalSignals, &r.NarrativeCount,
			&r.TopNarrative, &sources, &r.AgentVersion); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &r.DataSourcesUsed); err != nil {
			return nil, fmt.Errorf("unmarshaling sources: %w", err)
		}
		r.AnalyzedAt = fromNanos(analyzedAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the full result of a recorded run.
func (s *Store) GetRun(ctx context.Context, runID string) (*domain.AnalysisResult, error) {
	row := s.db.QueryRowContext(ctx, "SELECT result FROM runs WHERE run_id = ?", runID)
	return scanResult(row)
}

// LatestRun returns the newest recorded run.
func (s *Store) LatestRun(ctx context.Context) (*domain.AnalysisResult, error) {
	row := s.db.QueryRowContext(ctx, "SELECT result FROM runs ORDER BY analyzed_at DESC, rowid DESC LIMIT 1")
	return scanResult(row)
}

// NarrativeHistory returns one narrative's scores across runs, newest first.
// IDs match case-insensitively.
func (s *Store) NarrativeHistory(ctx context.Context, narrativeID string, limit int) ([]domain.NarrativePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.analyzed_at, n.confidence, n.trend, n.signal_count
		FROM narratives n JOIN runs r ON r.run_id = n.run_id
		WHERE n.narrative_id = ? COLLATE NOCASE
		ORDER BY r.analyzed_at DESC, r.rowid DESC LIMIT ?
	`, narrativeID, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying narrative history: %w", err)
	}
	defer rows.Close()

	points := []domain.NarrativePoint{}
	for rows.Next() {
		var p domain.NarrativePoint
		var analyzedAt int64
		var trend string
		if err := rows.Scan(&p.RunID, &analyzedAt, &p.Confidence, &trend, &p.SignalCount); err != nil {
			return nil, fmt.Errorf("scanning narrative point: %w", err)
		}
		p.AnalyzedAt = fromNanos(analyzedAt)
		p.Trend = domain.Trend(trend)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating narrative history: %w", err)
	}
	return points, nil
}

// PruneRuns deletes all but the newest keep runs.
func (s *Store) PruneRuns(ctx context.Context, keep int) error {
	if keep < 1 {
		return fmt.Errorf("%w: keep must be at least 1", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE run_id NOT IN (
			SELECT run_id FROM runs ORDER BY analyzed_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

func scanResult(row *sql.Row) (*domain.AnalysisResult, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
