package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Export is one recorded render of a workbook.
type Export struct {
	ID        int64
	CreatedAt time.Time
	Path      string
	Title     string
	Status    string
	Sheets    int
	Rows      int
	Elapsed   time.Duration
	Error     string
}

type SQLiteStore struct {
	db *sql.DB
}

var ErrExportNotFound = errors.New("export not found")

// Fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS exports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	path TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('completed', 'fallback', 'cancelled', 'failed')),
	sheets INTEGER NOT NULL CHECK(sheets >= 0),
	row_count INTEGER NOT NULL CHECK(row_count >= 0),
	elapsed_ms INTEGER NOT NULL CHECK(elapsed_ms >= 0),
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return s.ensureColumn("title", `ALTER TABLE exports ADD COLUMN title TEXT NOT NULL DEFAULT '';`)
}

// ensureColumn adds a column to databases created before it existed.
func (s *SQLiteStore) ensureColumn(column, ddl string) error {
	rows, err := s.db.Query(`PRAGMA table_info(exports);`)
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, column) {
			found = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}
	// Release the PRAGMA cursor before altering the table.
	rows.Close()

	if found {
		return nil
	}
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("add %s column: %w", column, err)
	}
	return nil
}

func (s *SQLiteStore) InsertExport(export Export) (int64, error) {
	const insertStmt = `
INSERT INTO exports (
	created_at,
	path,
	title,
	status,
	sheets,
	row_count,
	elapsed_ms,
	error
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	createdAt := export.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(
		insertStmt,
		createdAt.UTC().Format(timestampLayout),
		export.Path,
		export.Title,
		export.Status,
		export.Sheets,
		export.Rows,
		export.Elapsed.Milliseconds(),
		export.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("insert export: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	return id, nil
}

// ListExports returns the newest exports first. A limit <= 0 returns all.
func (s *SQLiteStore) ListExports(limit int) ([]Export, error) {
	query := `
SELECT id, created_at, path, title, status, sheets, row_count, elapsed_ms, error
FROM exports
ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	exports := make([]Export, 0, 32)
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}

	return exports, nil
}

// GetExportByID returns one export by ID.
func (s *SQLiteStore) GetExportByID(id int64) (Export, error) {
	row := s.db.QueryRow(`
SELECT id, created_at, path, title, status, sheets, row_count, elapsed_ms, error
FROM exports
WHERE id = ?;`, id)

	export, err := scanExport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, fmt.Errorf("export %d: %w", id, ErrExportNotFound)
	}
	return export, err
}

func (s *SQLiteStore) DeleteExport(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("export id must be > 0")
	}

	res, err := s.db.Exec(`DELETE FROM exports WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete export %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) DeleteAllExports() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM exports;`)
	if err != nil {
		return 0, fmt.Errorf("delete exports: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(row scanner) (Export, error) {
	var (
		export     Export
		createdRaw string
		elapsedMS  int64
	)
	if err := row.Scan(
		&export.ID,
		&createdRaw,
		&export.Path,
		&export.Title,
		&export.Status,
		&export.Sheets,
		&export.Rows,
		&elapsedMS,
		&export.Error,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, err
		}
		return Export{}, fmt.Errorf("scan export: %w", err)
	}

	createdAt, err := time.Parse(timestampLayout, createdRaw)
	if err != nil {
		return Export{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	export.CreatedAt = createdAt.Local()
	export.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return export, nil
}
