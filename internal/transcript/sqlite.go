package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed transcript store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens or creates a transcript database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS events (
			session TEXT NOT NULL,
			seq INTEGER NOT NULL,
			op TEXT NOT NULL,
			value TEXT NOT NULL,
			ts INTEGER NOT NULL,
			PRIMARY KEY (session, seq)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}

	s := &SQLite{db: db}

	version, err := s.schemaVersion()
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setSchemaVersion(SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Append records an event.
func (s *SQLite) Append(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (session, seq, op, value, ts) VALUES (?, ?, ?, ?, ?)
	`, e.Session, e.Seq, string(e.Op), e.Value, e.Time.UnixNano())
	return err
}

// Events returns the events of a session in Seq order.
func (s *SQLite) Events(ctx context.Context, session string, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT seq, op, value, ts FROM events WHERE session = ? ORDER BY seq"
	args := []any{session}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e  Event
			op string
			ts int64
		)
		if err := rows.Scan(&e.Seq, &op, &e.Value, &ts); err != nil {
			return nil, err
		}
		e.Session = session
		e.Op = Op(op)
		e.Time = time.Unix(0, ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Sessions lists recorded sessions, oldest first.
func (s *SQLite) Sessions(ctx context.Context) ([]SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT session, COUNT(*), MIN(ts), MAX(ts)
		FROM events
		GROUP BY session
		ORDER BY MIN(ts), session
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var (
			info        SessionInfo
			first, last int64
		)
		if err := rows.Scan(&info.Session, &info.Events, &first, &last); err != nil {
			return nil, err
		}
		info.First = time.Unix(0, first)
		info.Last = time.Unix(0, last)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// schemaVersion returns the recorded schema version, or "" for a new database.
func (s *SQLite) schemaVersion() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var version string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return version, err
}

func (s *SQLite) setSchemaVersion(version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES ('schema_version', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, version)
	return err
}
