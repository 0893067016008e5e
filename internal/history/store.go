// Package history persists one record per generate run in a SQLite
// database so past runs can be inspected, aggregated, and exported.
// Recording is best-effort for callers: a store failure should be
// reported as a warning, never abort a run.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wheeler/codesum/internal/models"
)

// Store manages the SQLite run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout must come first so the remaining pragmas wait on
	// locks instead of failing under concurrent initialization.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// "database is locked" errors.
func execWithRetry(db *sql.DB, sql string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(sql)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		delay := baseDelay * time.Duration(1<<attempt)
		time.Sleep(delay)
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// tableExists checks if a table exists in the database.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	err := s.db.QueryRow(query, tableName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table existence: %w", err)
	}
	return count > 0, nil
}

// indexExists checks if an index exists in the database.
func (s *Store) indexExists(indexName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`
	err := s.db.QueryRow(query, indexName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check index existence: %w", err)
	}
	return count > 0, nil
}

// RecordRun inserts one run record. A missing RunID is assigned, a
// zero CreatedAt is set to now; both mutations are visible to the
// caller through rec.
func (s *Store) RecordRun(ctx context.Context, rec *models.RunRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	languagesJSON := "[]"
	if len(rec.Languages) > 0 {
		data, err := json.Marshal(rec.Languages)
		if err != nil {
			return fmt.Errorf("marshal languages: %w", err)
		}
		languagesJSON = string(data)
	}

	projectTypesJSON := "[]"
	if len(rec.ProjectTypes) > 0 {
		data, err := json.Marshal(rec.ProjectTypes)
		if err != nil {
			return fmt.Errorf("marshal project types: %w", err)
		}
		projectTypesJSON = string(data)
	}

	query := `INSERT INTO runs
		(run_id, root_dir, output_path, file_count, total_lines, truncated_count, error_count, languages, project_types, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.RunID,
		rec.RootDir,
		rec.OutputPath,
		rec.FileCount,
		rec.TotalLines,
		rec.TruncatedCount,
		rec.ErrorCount,
		languagesJSON,
		projectTypesJSON,
		rec.Duration.Milliseconds(),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// ListRuns retrieves run records, most recent first. A non-empty
// rootDir filters to that scan root; limit > 0 caps the result.
func (s *Store) ListRuns(ctx context.Context, rootDir string, limit int) ([]*models.RunRecord, error) {
	query := `SELECT run_id, root_dir, output_path, file_count, total_lines, truncated_count, error_count, languages, project_types, duration_ms, created_at
		FROM runs`
	var args []interface{}
	if rootDir != "" {
		query += ` WHERE root_dir = ?`
		args = append(args, rootDir)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		rec := &models.RunRecord{}
		var outputPath, languages, projectTypes sql.NullString
		var durationMs int64
		err := rows.Scan(
			&rec.RunID,
			&rec.RootDir,
			&outputPath,
			&rec.FileCount,
			&rec.TotalLines,
			&rec.TruncatedCount,
			&rec.ErrorCount,
			&languages,
			&projectTypes,
			&durationMs,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		if outputPath.Valid {
			rec.OutputPath = outputPath.String
		}
		if languages.Valid && languages.String != "" {
			if err := json.Unmarshal([]byte(languages.String), &rec.Languages); err != nil {
				return nil, fmt.Errorf("unmarshal languages: %w", err)
			}
		}
		if projectTypes.Valid && projectTypes.String != "" {
			if err := json.Unmarshal([]byte(projectTypes.String), &rec.ProjectTypes); err != nil {
				return nil, fmt.Errorf("unmarshal project types: %w", err)
			}
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond

		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes run records and reports how many were removed. An
// empty rootDir clears the whole table.
func (s *Store) ClearRuns(ctx context.Context, rootDir string) (int64, error) {
	var result sql.Result
	var err error
	if rootDir == "" {
		result, err = s.db.ExecContext(ctx, `DELETE FROM runs`)
	} else {
		result, err = s.db.ExecContext(ctx, `DELETE FROM runs WHERE root_dir = ?`, rootDir)
	}
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return deleted, nil
}
