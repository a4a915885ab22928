// Package session stores per-browser-session chat transcripts and topic
// counters in SQLite. The database lives in memory, so nothing survives a
// server restart: a session's transcript exists only for the lifetime of
// the process that created it.
package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Session represents one browser session and its settings.
type Session struct {
	ID            string    `json:"id"`
	ExplainSimple bool      `json:"explain_simple"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Message is a single transcript entry. Role is "system", "user" or
// "assistant". Messages are append-only and never modified.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TopicCount is one entry of a session's topic-frequency tally.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Store manages sessions, transcripts, and topic counts.
type Store struct {
	db *sql.DB
}

// NewStore opens an in-memory SQLite database and creates the schema.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every new connection to ":memory:" gets its own empty database, so
	// pin the pool to a single connection.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id             TEXT PRIMARY KEY,
			explain_simple INTEGER NOT NULL DEFAULT 0,
			created_at     DATETIME NOT NULL,
			updated_at     DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_messages_session_id
			ON messages(session_id);

		CREATE TABLE IF NOT EXISTS topic_counts (
			session_id TEXT NOT NULL,
			topic      TEXT NOT NULL,
			count      INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, topic)
		);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session. Zero timestamps default to now.
func (s *Store) CreateSession(sess *Session) error {
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = now
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, explain_simple, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		sess.ID, sess.ExplainSimple, sess.CreatedAt, sess.UpdatedAt,
	)
	return err
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (*Session, error) {
	sess := &Session{}
	err := s.db.QueryRow(
		`SELECT id, explain_simple, created_at, updated_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.ExplainSimple, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// SetExplainSimple toggles the simplified-explanation setting.
func (s *Store) SetExplainSimple(id string, v bool) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET explain_simple = ?, updated_at = ? WHERE id = ?`,
		v, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// AppendMessage appends one message to a session's transcript and fills in
// the message's ID. A zero CreatedAt defaults to now.
func (s *Store) AppendMessage(msg *Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	result, err := s.db.Exec(
		`INSERT INTO messages (session_id, role, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		msg.SessionID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	msg.ID = id
	return nil
}

// Messages returns a session's transcript in append order.
func (s *Store) Messages(sessionID string) ([]*Message, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, role, content, created_at
		 FROM messages
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// ClearMessages deletes a session's entire transcript.
func (s *Store) ClearMessages(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE session_id = ?`, sessionID)
	return err
}

// IncrementTopic bumps the frequency counter for a topic in one session.
func (s *Store) IncrementTopic(sessionID, topic string) error {
	_, err := s.db.Exec(
		`INSERT INTO topic_counts (session_id, topic, count)
		 VALUES (?, ?, 1)
		 ON CONFLICT (session_id, topic) DO UPDATE SET count = count + 1`,
		sessionID, topic,
	)
	return err
}

// TopTopics returns a session's most frequent topics, highest count first.
// Ties are broken alphabetically so results are deterministic.
func (s *Store) TopTopics(sessionID string, limit int) ([]TopicCount, error) {
	rows, err := s.db.Query(
		`SELECT topic, count FROM topic_counts
		 WHERE session_id = ?
		 ORDER BY count DESC, topic ASC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []TopicCount
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, err
		}
		topics = append(topics, tc)
	}
	return topics, rows.Err()
}
