// Package history keeps a sqlite ledger of every STL file the tool writes.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/gridfit/internal/monitoring"
	"github.com/banshee-data/gridfit/internal/timeutil"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultPath is the history database file, relative to the working root.
const DefaultPath = ".gf-history.db"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Entry is one exported file.
type Entry struct {
	ID        string    `json:"id"`
	Project   string    `json:"project,omitempty"`
	Component string    `json:"component"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// DB is the generation ledger. Clock stamps new entries.
type DB struct {
	*sql.DB
	Clock timeutil.Clock
}

// Open opens (creating if needed) the history database at path and applies
// any pending migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := sqlDB.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to configure history db: %w", err)
	}

	db := &DB{DB: sqlDB, Clock: timeutil.RealClock{}}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// MigrateUp runs all pending migrations up to the latest version.
// Returns nil if no migrations were needed (already at latest version).
func (db *DB) MigrateUp() error {
	m, err := db.newMigrate()
	if err != nil {
		return err
	}
	// Closing m would close the shared connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Version returns the current schema version, 0 when nothing is applied.
func (db *DB) Version() (uint, bool, error) {
	m, err := db.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (db *DB) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

// migrateLogger implements migrate.Logger on the debug logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Debugf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// Record stores e, assigning an ID and timestamp when they are unset, and
// returns the stored entry.
func (db *DB) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Component == "" || e.Path == "" {
		return Entry{}, fmt.Errorf("history entry needs a component and a path")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = db.Clock.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := db.ExecContext(ctx, `
		INSERT INTO generations (generation_id, project, component, kind, path, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Project, e.Component, e.Kind, e.Path, e.SizeBytes, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record generation: %w", err)
	}
	return e, nil
}

// List returns entries newest first. An empty project lists every entry; a
// non-positive limit returns all rows.
func (db *DB) List(ctx context.Context, project string, limit int) ([]Entry, error) {
	query := `SELECT generation_id, project, component, kind, path, size_bytes, created_at
		FROM generations`
	var args []interface{}
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Project, &e.Component, &e.Kind, &e.Path, &e.SizeBytes, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
