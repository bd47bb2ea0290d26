package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Event types written by the TUI and CLI.
const (
	TypeFetchOK          = "fetch.ok"
	TypeFetchFailed      = "fetch.failed"
	TypeSelectionToggled = "selection.toggled"
	TypeMergeCreated     = "merge.created"
	TypeMergeRejected    = "merge.rejected"
	TypeItemMoved        = "item.moved"
	TypeSessionCommitted = "session.committed"
	TypeSessionCancelled = "session.cancelled"
)

type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId"`
	TS        time.Time      `json:"ts"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
}

// Recorder appends session events.
type Recorder interface {
	Record(ctx context.Context, typ string, payload map[string]any) error
}

// Nop discards events. It is used when no journal path is configured.
type Nop struct{}

func (Nop) Record(context.Context, string, map[string]any) error { return nil }

// Journal is an append-only sqlite log of what happened during listmerge sessions.
// It is a history only: board state is never restored from it.
type Journal struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

func Open(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: %s: %w", p, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}
	return &Journal{
		db:        db,
		sessionID: uuid.NewString(),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Record(ctx context.Context, typ string, payload map[string]any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("journal: empty event type")
	}
	if payload == nil {
		payload = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("journal: payload: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO events(event_id, session_id, type, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		uuid.NewString(), j.sessionID, typ, string(b), j.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("journal: insert: %w", err)
	}
	return nil
}

// List returns events oldest-first. With limit > 0 only the newest limit events are returned.
func (j *Journal) List(ctx context.Context, limit int) ([]Event, error) {
	q := `SELECT event_id, session_id, type, payload_json, issued_at_unixms FROM events ORDER BY seq`
	args := []any{}
	if limit > 0 {
		q = `SELECT event_id, session_id, type, payload_json, issued_at_unixms FROM (
			SELECT * FROM events ORDER BY seq DESC LIMIT ?
		) ORDER BY seq`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			ev      Event
			payload string
			ms      int64
		)
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Type, &payload, &ms); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &ev.Payload); err != nil {
			return nil, fmt.Errorf("journal: event %s payload: %w", ev.ID, err)
		}
		ev.TS = time.UnixMilli(ms).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
