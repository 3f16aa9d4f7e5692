package queue

import "encoding/json"

// Store is a durable FIFO store of queued actions. Every mutation is
// persisted before the call returns; an in-memory view is never authoritative
// across restarts. Implementations must be safe for concurrent use.
type Store interface {
	// Enqueue appends a new PENDING action and returns it. Returns
	// ErrQueueFull when the capacity limit is reached.
	Enqueue(actionType ActionType, payload json.RawMessage) (*Action, error)

	// List returns all actions in insertion order, read from persisted state.
	List() ([]Action, error)

	// UpdateStatus replaces the status of the matching action. An absent id
	// yields ErrActionMissing.
	UpdateStatus(id string, status Status) error

	// IncrementRetry increments the replay attempt counter of the matching
	// action. An absent id yields ErrActionMissing.
	IncrementRetry(id string) error

	// Remove deletes the matching action. Removing an absent id is a no-op.
	Remove(id string) error

	// Clear deletes all actions. Used on session teardown.
	Clear() error

	// Len returns the number of persisted actions.
	Len() (int, error)

	// Close releases any underlying resources.
	Close() error
}
