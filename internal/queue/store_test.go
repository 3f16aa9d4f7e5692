// Package queue tests shared behavior of the durable action stores. Both
// backends must satisfy the same contract, so the common cases run against
// each through newStoreFuncs.
package queue

import (
	"encoding/json"
	"testing"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// newStoreFuncs enumerates the store backends under test.
var newStoreFuncs = map[string]func(t *testing.T) Store{
	"file": func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir(), 100)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		return s
	},
	"sqlite": func(t *testing.T) Store {
		s, err := OpenSQLiteStore(t.TempDir(), 100)
		if err != nil {
			t.Fatalf("OpenSQLiteStore failed: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	},
}

func mustPayload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return data
}

// TestEnqueueRoundTrip verifies a new action appears in List with PENDING
// status and zero retries.
func TestEnqueueRoundTrip(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			action, err := store.Enqueue(ActionTranscribe,
				mustPayload(t, TranscribePayload{AudioURI: "file://a.m4a"}))
			if err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}
			if action.ID == "" {
				t.Error("Expected action ID to be set")
			}
			if action.Timestamp == 0 {
				t.Error("Expected action timestamp to be set")
			}

			actions, err := store.List()
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(actions) != 1 {
				t.Fatalf("Expected 1 action, got %d", len(actions))
			}

			got := actions[0]
			if got.ID != action.ID {
				t.Errorf("Expected ID %s, got %s", action.ID, got.ID)
			}
			if got.Status != StatusPending {
				t.Errorf("Expected PENDING status, got %s", got.Status)
			}
			if got.RetryCount != 0 {
				t.Errorf("Expected RetryCount 0, got %d", got.RetryCount)
			}

			var payload TranscribePayload
			if err := json.Unmarshal(got.Payload, &payload); err != nil {
				t.Fatalf("Failed to decode payload: %v", err)
			}
			if payload.AudioURI != "file://a.m4a" {
				t.Errorf("Expected audio URI preserved, got %q", payload.AudioURI)
			}
		})
	}
}

// TestQueueLengthAndUniqueIDs verifies length accounting and id uniqueness
// across a sequence of enqueues and removals.
func TestQueueLengthAndUniqueIDs(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			seen := make(map[string]bool)
			var firstID string
			for i := 0; i < 10; i++ {
				action, err := store.Enqueue(ActionExtract,
					mustPayload(t, ExtractPayload{OCRText: "invoice"}))
				if err != nil {
					t.Fatalf("Enqueue %d failed: %v", i, err)
				}
				if seen[action.ID] {
					t.Fatalf("Duplicate action ID %s", action.ID)
				}
				seen[action.ID] = true
				if i == 0 {
					firstID = action.ID
				}
			}

			n, err := store.Len()
			if err != nil {
				t.Fatalf("Len failed: %v", err)
			}
			if n != 10 {
				t.Errorf("Expected 10 actions, got %d", n)
			}

			if err := store.Remove(firstID); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			n, _ = store.Len()
			if n != 9 {
				t.Errorf("Expected 9 actions after removal, got %d", n)
			}
		})
	}
}

// TestListInsertionOrder verifies actions come back in the order enqueued.
func TestListInsertionOrder(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			var ids []string
			for i := 0; i < 5; i++ {
				action, err := store.Enqueue(ActionExtract,
					mustPayload(t, ExtractPayload{OCRText: "doc"}))
				if err != nil {
					t.Fatalf("Enqueue failed: %v", err)
				}
				ids = append(ids, action.ID)
			}

			actions, err := store.List()
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			for i, a := range actions {
				if a.ID != ids[i] {
					t.Errorf("Position %d: expected %s, got %s", i, ids[i], a.ID)
				}
			}
		})
	}
}

// TestListIdempotent verifies two reads without mutation return identical
// content.
func TestListIdempotent(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			if _, err := store.Enqueue(ActionExtract, mustPayload(t, ExtractPayload{OCRText: "x"})); err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}

			first, err := store.List()
			if err != nil {
				t.Fatalf("First List failed: %v", err)
			}
			second, err := store.List()
			if err != nil {
				t.Fatalf("Second List failed: %v", err)
			}

			if len(first) != len(second) {
				t.Fatalf("Expected identical lengths, got %d and %d", len(first), len(second))
			}
			for i := range first {
				if first[i].ID != second[i].ID || first[i].Status != second[i].Status {
					t.Errorf("Position %d differs between reads", i)
				}
			}
		})
	}
}

// TestUpdateStatus verifies status transitions are persisted and absent ids
// are reported.
func TestUpdateStatus(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			action, err := store.Enqueue(ActionTranscribe,
				mustPayload(t, TranscribePayload{AudioURI: "file://a.m4a"}))
			if err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}

			if err := store.UpdateStatus(action.ID, StatusSyncing); err != nil {
				t.Fatalf("UpdateStatus failed: %v", err)
			}

			actions, _ := store.List()
			if actions[0].Status != StatusSyncing {
				t.Errorf("Expected SYNCING, got %s", actions[0].Status)
			}

			if err := store.UpdateStatus("missing-id", StatusFailed); !errors.Is(err, errors.ErrActionMissing) {
				t.Errorf("Expected ErrActionMissing, got %v", err)
			}
		})
	}
}

// TestIncrementRetry verifies the attempt counter is persisted.
func TestIncrementRetry(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			action, err := store.Enqueue(ActionExtract,
				mustPayload(t, ExtractPayload{OCRText: "y"}))
			if err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}

			if err := store.IncrementRetry(action.ID); err != nil {
				t.Fatalf("IncrementRetry failed: %v", err)
			}
			if err := store.IncrementRetry(action.ID); err != nil {
				t.Fatalf("IncrementRetry failed: %v", err)
			}

			actions, _ := store.List()
			if actions[0].RetryCount != 2 {
				t.Errorf("Expected RetryCount 2, got %d", actions[0].RetryCount)
			}

			if err := store.IncrementRetry("missing-id"); !errors.Is(err, errors.ErrActionMissing) {
				t.Errorf("Expected ErrActionMissing, got %v", err)
			}
		})
	}
}

// TestRemoveAbsentID verifies removal of an unknown id is a no-op.
func TestRemoveAbsentID(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			if err := store.Remove("never-enqueued"); err != nil {
				t.Errorf("Expected no error removing absent id, got %v", err)
			}
		})
	}
}

// TestClear verifies Clear empties the queue and the queue stays usable.
func TestClear(t *testing.T) {
	for name, newStore := range newStoreFuncs {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			for i := 0; i < 3; i++ {
				if _, err := store.Enqueue(ActionExtract, mustPayload(t, ExtractPayload{OCRText: "z"})); err != nil {
					t.Fatalf("Enqueue failed: %v", err)
				}
			}

			if err := store.Clear(); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}

			n, err := store.Len()
			if err != nil {
				t.Fatalf("Len failed: %v", err)
			}
			if n != 0 {
				t.Errorf("Expected empty queue after Clear, got %d", n)
			}

			if _, err := store.Enqueue(ActionExtract, mustPayload(t, ExtractPayload{OCRText: "after"})); err != nil {
				t.Errorf("Expected enqueue to work after Clear, got %v", err)
			}
		})
	}
}

// TestQueueCapacity verifies the capacity limit is enforced.
func TestQueueCapacity(t *testing.T) {
	stores := map[string]Store{}
	fs, err := NewFileStore(t.TempDir(), 2)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	stores["file"] = fs
	ss, err := OpenSQLiteStore(t.TempDir(), 2)
	if err != nil {
		t.Fatalf("OpenSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { ss.Close() })
	stores["sqlite"] = ss

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			payload := mustPayload(t, ExtractPayload{OCRText: "cap"})
			if _, err := store.Enqueue(ActionExtract, payload); err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}
			if _, err := store.Enqueue(ActionExtract, payload); err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}

			if _, err := store.Enqueue(ActionExtract, payload); !errors.Is(err, errors.ErrQueueFull) {
				t.Errorf("Expected ErrQueueFull, got %v", err)
			}
		})
	}
}
