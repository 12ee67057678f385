package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	build_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	payload BLOB NOT NULL,
	metadata TEXT
);
CREATE INDEX IF NOT EXISTS idx_build_id ON events(build_id);
CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the history database. Use ":memory:" for
// an in-memory store.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.HistoryError("could not open history database").
			WithCause(err).
			WithContext("path", dbPath).
			Build()
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.HistoryError("failed to initialize history schema").
			WithCause(err).
			WithContext("path", dbPath).
			Build()
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var metadataJSON []byte
	if md := event.Metadata(); md != nil {
		var err error
		if metadataJSON, err = json.Marshal(md); err != nil {
			return errors.HistoryError("failed to marshal event metadata").WithCause(err).Build()
		}
	}

	ts := event.Timestamp()
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (build_id, event_type, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		event.BuildID(), event.Type(), ts.UnixMilli(), event.Payload(), metadataJSON,
	)
	if err != nil {
		return errors.HistoryError("failed to append event").
			WithCause(err).
			WithContext("build_id", event.BuildID()).
			Build()
	}
	return nil
}

func (s *SQLiteStore) GetByBuildID(ctx context.Context, buildID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, build_id, event_type, timestamp, payload, metadata FROM events WHERE build_id = ? ORDER BY id",
		buildID,
	)
	if err != nil {
		return nil, errors.HistoryError("failed to query events").WithCause(err).Build()
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, build_id, event_type, timestamp, payload, metadata FROM events WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, errors.HistoryError("failed to query events").WithCause(err).Build()
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var (
			e            BaseEvent
			tsMillis     int64
			metadataJSON []byte
		)
		if err := rows.Scan(&e.EventID, &e.EventBuildID, &e.EventType, &tsMillis, &e.EventPayload, &metadataJSON); err != nil {
			return nil, errors.HistoryError("failed to scan event row").WithCause(err).Build()
		}
		e.EventTimestamp = time.UnixMilli(tsMillis)
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.EventMetadata); err != nil {
				return nil, errors.HistoryError("failed to unmarshal event metadata").WithCause(err).Build()
			}
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HistoryError("failed to iterate event rows").WithCause(err).Build()
	}
	return events, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
