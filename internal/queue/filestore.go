package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

const queueFileName = "offline_action_queue.json"

// FileStore persists the queue as a JSON array in a single file, the same
// representation the mobile client keeps under its storage key. Every
// mutation rewrites the whole file through a temp file and rename, so a
// crash mid-write can never leave a partially written queue behind.
type FileStore struct {
	mu      sync.Mutex
	path    string
	maxSize int
}

// NewFileStore creates a file-backed store under dataDir. maxSize bounds the
// number of queued actions; 0 means unbounded.
func NewFileStore(dataDir string, maxSize int) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		path:    filepath.Join(dataDir, queueFileName),
		maxSize: maxSize,
	}, nil
}

// Enqueue appends a new PENDING action and persists the queue.
func (s *FileStore) Enqueue(actionType ActionType, payload json.RawMessage) (*Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := s.load()
	if err != nil {
		return nil, err
	}

	if s.maxSize > 0 && len(actions) >= s.maxSize {
		return nil, errors.New(errors.ErrQueueFull,
			fmt.Sprintf("queue is full (max size: %d)", s.maxSize))
	}

	action := newAction(actionType, payload)
	actions = append(actions, action)

	if err := s.save(actions); err != nil {
		return nil, err
	}
	return &action, nil
}

// List returns all persisted actions in insertion order.
func (s *FileStore) List() ([]Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// UpdateStatus replaces the status of the matching action.
func (s *FileStore) UpdateStatus(id string, status Status) error {
	return s.mutate(id, true, func(a *Action) {
		a.Status = status
	})
}

// IncrementRetry increments the replay attempt counter.
func (s *FileStore) IncrementRetry(id string) error {
	return s.mutate(id, true, func(a *Action) {
		a.RetryCount++
	})
}

// Remove deletes the matching action. Absent ids are ignored.
func (s *FileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := s.load()
	if err != nil {
		return err
	}

	kept := actions[:0]
	for _, a := range actions {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.save(kept)
}

// Clear deletes all actions.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}

// Len returns the number of persisted actions.
func (s *FileStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(actions), nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

// mutate applies fn to the action with the given id and persists the result.
func (s *FileStore) mutate(id string, mustExist bool, fn func(*Action)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := s.load()
	if err != nil {
		return err
	}

	found := false
	for i := range actions {
		if actions[i].ID == id {
			fn(&actions[i])
			found = true
			break
		}
	}
	if !found {
		if mustExist {
			return errors.New(errors.ErrActionMissing, "no queued action with id "+id)
		}
		return nil
	}
	return s.save(actions)
}

// load reads the persisted queue. A corrupt queue file is moved aside rather
// than silently treated as empty, so unsynced work is never dropped without
// a trace; the caller gets ErrQueueCorrupt naming the preserved file.
func (s *FileStore) load() ([]Action, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Action{}, nil
		}
		return nil, fmt.Errorf("failed to read queue file: %w", err)
	}

	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return nil, errors.Wrap(errors.ErrQueueCorrupt,
				"queue file is corrupt and could not be preserved", err)
		}
		return nil, errors.Wrap(errors.ErrQueueCorrupt,
			"queue file is corrupt; preserved at "+backup, err)
	}
	return actions, nil
}

// save rewrites the persisted queue atomically.
func (s *FileStore) save(actions []Action) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write queue file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace queue file: %w", err)
	}
	return nil
}
