// Package store persists validated worlds and generation runs in SQLite.
// The store is an audit trail and lookup index; the artifact trees on disk
// stay the source of truth for generated output.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// ErrNotFound is returned when a world ID has no stored model.
var ErrNotFound = errors.New("world not found")

// WorldStore is the SQLite-backed world repository.
type WorldStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*WorldStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &WorldStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("opened world store at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *WorldStore) initialize() error {
	pragmas := `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;
	PRAGMA synchronous = NORMAL;
	`

	worldsTable := `
	CREATE TABLE IF NOT EXISTS worlds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		theme TEXT NOT NULL,
		model_json TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		state TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		artifact_count INTEGER NOT NULL,
		rejection_count INTEGER NOT NULL,
		manifest_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_world ON runs(world_id, started_at);
	`

	for _, stmt := range []string{pragmas, worldsTable, runsTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *WorldStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// WORLDS
// =============================================================================

// SaveWorld upserts a validated world model.
func (s *WorldStore) SaveWorld(ctx context.Context, world *model.WorldModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(world)
	if err != nil {
		return fmt.Errorf("failed to serialize world: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO worlds (id, name, theme, model_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			theme = excluded.theme,
			model_json = excluded.model_json,
			updated_at = excluded.updated_at
	`, world.ID, world.Name, string(world.Theme), string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save world %s: %w", world.ID, err)
	}

	logging.StoreDebug("saved world %q", world.ID)
	return nil
}

// GetWorld loads one world model by ID.
func (s *WorldStore) GetWorld(ctx context.Context, id string) (*model.WorldModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT model_json FROM worlds WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world %s: %w", id, err)
	}

	var world model.WorldModel
	if err := json.Unmarshal([]byte(data), &world); err != nil {
		return nil, fmt.Errorf("failed to decode world %s: %w", id, err)
	}
	return &world, nil
}

// WorldSummary is one row of the world listing.
type WorldSummary struct {
	ID        string
	Name      string
	Theme     model.Theme
	UpdatedAt time.Time
}

// ListWorlds returns summaries of every stored world, most recent first.
func (s *WorldStore) ListWorlds(ctx context.Context) ([]WorldSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, theme, updated_at FROM worlds ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	defer rows.Close()

	var out []WorldSummary
	for rows.Next() {
		var w WorldSummary
		var theme string
		if err := rows.Scan(&w.ID, &w.Name, &theme, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan world row: %w", err)
		}
		w.Theme = model.Theme(theme)
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWorld removes a world and its run history.
func (s *WorldStore) DeleteWorld(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM worlds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete world %s: %w", id, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE world_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete runs for %s: %w", id, err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	logging.Store("deleted world %q", id)
	return nil
}

// =============================================================================
// RUNS
// =============================================================================

// SaveRun records one generation run manifest.
func (s *WorldStore) SaveRun(ctx context.Context, m *model.GenerationManifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, world_id, state, started_at, finished_at,
			artifact_count, rejection_count, manifest_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.RunID, m.WorldID, string(m.State), m.StartedAt.UTC(), m.FinishedAt.UTC(),
		m.ArtifactCount(), len(m.Rejections), string(data))
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", m.RunID, err)
	}

	logging.StoreDebug("saved run %s for world %q (%s)", m.RunID, m.WorldID, m.State)
	return nil
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	RunID          string
	WorldID        string
	State          model.RunState
	StartedAt      time.Time
	FinishedAt     time.Time
	ArtifactCount  int
	RejectionCount int
}

// ListRuns returns the run history for one world, most recent first.
func (s *WorldStore) ListRuns(ctx context.Context, worldID string) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, world_id, state, started_at, finished_at,
			artifact_count, rejection_count
		FROM runs WHERE world_id = ? ORDER BY started_at DESC
	`, worldID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs for %s: %w", worldID, err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var state string
		if err := rows.Scan(&r.RunID, &r.WorldID, &state, &r.StartedAt,
			&r.FinishedAt, &r.ArtifactCount, &r.RejectionCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		r.State = model.RunState(state)
		out = append(out, r)
	}
	return out, rows.Err()
}
