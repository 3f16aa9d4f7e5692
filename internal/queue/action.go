// Package queue provides the durable offline action queue. Actions deferred
// while the device is offline are persisted here and replayed by the sync
// coordinator once connectivity returns.
package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionType determines how the sync coordinator replays an action.
type ActionType string

const (
	ActionTranscribe ActionType = "TRANSCRIBE"
	ActionExtract    ActionType = "EXTRACT"
	// ActionAPICall is a generic passthrough request. No current producer
	// emits it; the payload is treated as an opaque APICallPayload.
	ActionAPICall ActionType = "API_CALL"
)

// Status represents the replay state of a queued action. Successful replay
// removes the action instead of marking it; there is no terminal-success
// status value.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSyncing Status = "SYNCING"
	StatusFailed  Status = "FAILED"
)

// Action is a unit of deferred work. Field names in JSON match the persisted
// queue format used by the mobile client.
type Action struct {
	ID         string          `json:"id" db:"id"`
	Type       ActionType      `json:"type" db:"type"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	Timestamp  int64           `json:"timestamp" db:"timestamp"` // unix millis at enqueue
	Status     Status          `json:"status" db:"status"`
	RetryCount int             `json:"retryCount" db:"retry_count"`
}

// newAction constructs a fresh PENDING action with a unique id.
func newAction(actionType ActionType, payload json.RawMessage) Action {
	return Action{
		ID:         uuid.New().String(),
		Type:       actionType,
		Payload:    payload,
		Timestamp:  time.Now().UnixMilli(),
		Status:     StatusPending,
		RetryCount: 0,
	}
}

// TranscribePayload is the payload for ActionTranscribe.
type TranscribePayload struct {
	AudioURI string `json:"audio_uri"`
}

// ExtractPayload is the payload for ActionExtract.
type ExtractPayload struct {
	OCRText string `json:"ocr_text"`
}

// APICallPayload is the payload for ActionAPICall.
type APICallPayload struct {
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Body   json.RawMessage `json:"body,omitempty"`
}
