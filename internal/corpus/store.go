// Package corpus persists prior generated projects so schema inference can
// scan their source for domain entities. The store is tenant-scoped and reads
// are capped at the most recently updated handful of records.
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RecentLimit caps how many projects inference reads per tenant.
const RecentLimit = 5

// Project is one stored project: a name plus the flattened source text that
// inference scans for entity keywords.
type Project struct {
	ID         string
	Tenant     string
	Name       string
	SourceText string
	UpdatedAt  time.Time
}

// Store is the read/write surface over the historical-project corpus.
type Store interface {
	Recent(ctx context.Context, tenant string, limit int) ([]Project, error)
	Save(ctx context.Context, p Project) error
	Close() error
}

// SQLiteStore implements Store on a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the corpus database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus db %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	const ddl = `
	CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		tenant      TEXT NOT NULL,
		name        TEXT NOT NULL,
		source_text TEXT NOT NULL,
		updated_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_projects_tenant_updated ON projects(tenant, updated_at DESC);
	`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create corpus schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Recent returns up to limit projects for a tenant, most recently updated
// first. A non-positive limit falls back to RecentLimit.
func (s *SQLiteStore) Recent(ctx context.Context, tenant string, limit int) ([]Project, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant, name, source_text, updated_at
		 FROM projects WHERE tenant = ?
		 ORDER BY updated_at DESC LIMIT ?`, tenant, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var updated int64
		if err := rows.Scan(&p.ID, &p.Tenant, &p.Name, &p.SourceText, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

// Save upserts a project. Empty IDs get a fresh UUID; a zero UpdatedAt is set
// to now.
func (s *SQLiteStore) Save(ctx context.Context, p Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, tenant, name, source_text, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source_text = excluded.source_text,
			updated_at = excluded.updated_at`,
		p.ID, p.Tenant, p.Name, p.SourceText, p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.Name, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
