package queue

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS action_queue (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT    NOT NULL UNIQUE,
	type        TEXT    NOT NULL,
	payload     TEXT    NOT NULL,
	timestamp   INTEGER NOT NULL,
	status      TEXT    NOT NULL,
	retry_count INTEGER NOT NULL DEFAULT 0
);`

// SQLiteStore persists the queue in a local SQLite database. Insertion order
// is preserved by the autoincrement sequence column; every mutation is a
// single committed statement, so the atomic-write requirement is carried by
// SQLite itself.
type SQLiteStore struct {
	db      *sql.DB
	maxSize int
}

// OpenSQLiteStore opens (and if needed creates) the queue database under
// dataDir. The database is opened with WAL mode and a single writer
// connection. maxSize bounds the number of queued actions; 0 means unbounded.
func OpenSQLiteStore(dataDir string, maxSize int) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "buildbidz.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create queue schema: %w", err)
	}

	return &SQLiteStore{db: db, maxSize: maxSize}, nil
}

// Enqueue appends a new PENDING action.
func (s *SQLiteStore) Enqueue(actionType ActionType, payload json.RawMessage) (*Action, error) {
	if s.maxSize > 0 {
		count, err := s.Len()
		if err != nil {
			return nil, err
		}
		if count >= s.maxSize {
			return nil, errors.New(errors.ErrQueueFull,
				fmt.Sprintf("queue is full (max size: %d)", s.maxSize))
		}
	}

	action := newAction(actionType, payload)
	_, err := s.db.Exec(
		`INSERT INTO action_queue (id, type, payload, timestamp, status, retry_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		action.ID, string(action.Type), string(action.Payload),
		action.Timestamp, string(action.Status), action.RetryCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue action: %w", err)
	}
	return &action, nil
}

// List returns all actions in insertion order.
func (s *SQLiteStore) List() ([]Action, error) {
	rows, err := s.db.Query(
		`SELECT id, type, payload, timestamp, status, retry_count
		 FROM action_queue ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	actions := []Action{}
	for rows.Next() {
		var a Action
		var actionType, payload, status string
		if err := rows.Scan(&a.ID, &actionType, &payload, &a.Timestamp, &status, &a.RetryCount); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		a.Type = ActionType(actionType)
		a.Payload = json.RawMessage(payload)
		a.Status = Status(status)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// UpdateStatus replaces the status of the matching action.
func (s *SQLiteStore) UpdateStatus(id string, status Status) error {
	res, err := s.db.Exec(
		"UPDATE action_queue SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return s.requireRow(res, id)
}

// IncrementRetry increments the replay attempt counter.
func (s *SQLiteStore) IncrementRetry(id string) error {
	res, err := s.db.Exec(
		"UPDATE action_queue SET retry_count = retry_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}
	return s.requireRow(res, id)
}

// Remove deletes the matching action. Absent ids are ignored.
func (s *SQLiteStore) Remove(id string) error {
	if _, err := s.db.Exec("DELETE FROM action_queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to remove action: %w", err)
	}
	return nil
}

// Clear deletes all actions.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM action_queue"); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// Len returns the number of persisted actions.
func (s *SQLiteStore) Len() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM action_queue").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New(errors.ErrActionMissing, "no queued action with id "+id)
	}
	return nil
}
