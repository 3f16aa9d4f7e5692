// Package queue tests specific to the file-backed store.
package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// TestFileStoreSurvivesReopen verifies the queue is durable across store
// instances, simulating a process restart.
func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	action, err := store.Enqueue(ActionTranscribe,
		mustPayload(t, TranscribePayload{AudioURI: "file://a.m4a"}))
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	reopened, err := NewFileStore(dir, 0)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	actions, err := reopened.List()
	if err != nil {
		t.Fatalf("List after reopen failed: %v", err)
	}
	if len(actions) != 1 || actions[0].ID != action.ID {
		t.Errorf("Expected the enqueued action to survive reopen")
	}
}

// TestFileStoreWireFormat verifies the persisted JSON uses the field names of
// the mobile client's queue format.
func TestFileStoreWireFormat(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := store.Enqueue(ActionExtract, mustPayload(t, ExtractPayload{OCRText: "inv"})); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, queueFileName))
	if err != nil {
		t.Fatalf("Failed to read queue file: %v", err)
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Queue file is not a JSON array: %v", err)
	}
	for _, key := range []string{"id", "type", "payload", "timestamp", "status", "retryCount"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("Expected persisted key %q", key)
		}
	}
}

// TestFileStoreCorruptFile verifies a corrupt queue file fails loudly and is
// preserved alongside the fresh queue instead of being silently discarded.
func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, queueFileName)
	if err := os.WriteFile(path, []byte("{not valid json"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	store, err := NewFileStore(dir, 0)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	_, err = store.List()
	if !errors.Is(err, errors.ErrQueueCorrupt) {
		t.Fatalf("Expected ErrQueueCorrupt, got %v", err)
	}

	// The corrupt content must have been moved aside, not deleted.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir failed: %v", readErr)
	}
	preserved := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), queueFileName+".corrupt-") {
			preserved = true
		}
	}
	if !preserved {
		t.Error("Expected corrupt queue file to be preserved with a .corrupt suffix")
	}

	// After the corrupt file is moved aside the queue starts fresh.
	actions, err := store.List()
	if err != nil {
		t.Fatalf("List after recovery failed: %v", err)
	}
	if len(actions) != 0 {
		t.Errorf("Expected empty queue after recovery, got %d entries", len(actions))
	}
}

// TestFileStoreNoTempLeftovers verifies the atomic rewrite leaves no temp
// file behind.
func TestFileStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, 0)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := store.Enqueue(ActionExtract, mustPayload(t, ExtractPayload{OCRText: "inv"})); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, queueFileName+".tmp")); !os.IsNotExist(err) {
		t.Error("Expected no leftover temp file after save")
	}
}
