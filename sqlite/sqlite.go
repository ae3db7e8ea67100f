// Package sqlite caches chat history locally in a SQLite database so the
// history view works without a round trip per session.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/CoderFake/ragchat"
	_ "modernc.org/sqlite"
)

var _ ragchat.HistoryStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	session_id TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	id         TEXT    NOT NULL,
	role       TEXT    NOT NULL,
	content    TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	query_id   TEXT    NOT NULL DEFAULT '',
	user_id    INTEGER NOT NULL DEFAULT 0,
	sources    TEXT    NOT NULL DEFAULT '[]',
	PRIMARY KEY (session_id, position)
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// Store is a HistoryStore on a SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and initialises the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Pragmas are per connection; keep exactly one alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type sourceDTO struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Save replaces the cached messages of a session.
func (s *Store) Save(ctx context.Context, sessionID string, msgs []ragchat.Message) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required: %w", ragchat.ErrValidation)
	}
	updated := ragchat.Session{Messages: msgs}.LastUpdated()
	if updated.IsZero() {
		updated = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, updated_at) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, updated.UnixNano()); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (session_id, position, id, role, content, created_at, query_id, user_id, sources)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, m := range msgs {
		sources, err := marshalSources(m.Sources)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, sessionID, i, m.ID, string(m.Role), m.Content,
			m.CreatedAt.UnixNano(), m.QueryID, m.UserID, sources); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Sessions returns every cached session with its messages, newest first.
func (s *Store) Sessions(ctx context.Context) ([]ragchat.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, updated_at FROM sessions ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	var sessions []ragchat.Session
	for rows.Next() {
		var (
			sess    ragchat.Session
			updated int64
		)
		if err := rows.Scan(&sess.ID, &updated); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.UpdatedAt = time.Unix(0, updated).UTC()
		sessions = append(sessions, sess)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	for i := range sessions {
		msgs, err := s.messages(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Messages = msgs
	}
	return sessions, nil
}

// Messages returns the cached messages of one session in order.
func (s *Store) Messages(ctx context.Context, sessionID string) ([]ragchat.Message, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, sessionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %q: %w", sessionID, ragchat.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return s.messages(ctx, sessionID)
}

func (s *Store) messages(ctx context.Context, sessionID string) ([]ragchat.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at, query_id, user_id, sources
		 FROM messages WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	msgs := []ragchat.Message{}
	for rows.Next() {
		var (
			m       ragchat.Message
			role    string
			created int64
			sources string
		)
		if err := rows.Scan(&m.ID, &role, &m.Content, &created, &m.QueryID, &m.UserID, &sources); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Role = ragchat.Role(role)
		m.CreatedAt = time.Unix(0, created).UTC()
		if m.Sources, err = unmarshalSources(sources); err != nil {
			return nil, fmt.Errorf("message %s: %w", m.ID, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}

// DeleteSession removes a session and its messages.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %q: %w", sessionID, ragchat.ErrNotFound)
	}
	return nil
}

func marshalSources(sources []ragchat.DocumentSource) (string, error) {
	dtos := make([]sourceDTO, len(sources))
	for i, src := range sources {
		dtos[i] = sourceDTO(src)
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return "", fmt.Errorf("marshal sources: %w", err)
	}
	return string(data), nil
}

func unmarshalSources(data string) ([]ragchat.DocumentSource, error) {
	var dtos []sourceDTO
	if err := json.Unmarshal([]byte(data), &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal sources: %w", err)
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	sources := make([]ragchat.DocumentSource, len(dtos))
	for i, d := range dtos {
		sources[i] = ragchat.DocumentSource(d)
	}
	return sources, nil
}
