// Package sync drains the offline action queue against the backend once
// connectivity returns.
package sync

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	gosync "sync"

	"github.com/rs/zerolog"

	"github.com/buildbidz/buildbidz-go/internal/api"
	"github.com/buildbidz/buildbidz-go/internal/errors"
	"github.com/buildbidz/buildbidz-go/internal/queue"
)

// Replayer is the slice of the API client the coordinator needs to replay
// queued actions.
type Replayer interface {
	Transcribe(ctx context.Context, fileName string, audio io.Reader) (*api.TranscribeResult, error)
	Extract(ctx context.Context, ocrText string) (*api.ExtractResult, error)
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

// Result summarizes one drain pass.
type Result struct {
	Replayed int
	Failed   int
	Skipped  int
}

// Coordinator replays queued actions in insertion order. A single drain pass
// runs at a time; concurrent Sync calls return ErrSyncInProgress instead of
// double-processing.
type Coordinator struct {
	store  queue.Store
	client Replayer
	logger zerolog.Logger

	// maxReplayAttempts caps retries per action; zero means unlimited.
	maxReplayAttempts int

	mu       gosync.Mutex
	draining bool
}

// NewCoordinator creates a Coordinator over the given store and client.
func NewCoordinator(store queue.Store, client Replayer, maxReplayAttempts int, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:             store,
		client:            client,
		logger:            logger,
		maxReplayAttempts: maxReplayAttempts,
	}
}

// Sync performs one drain pass over the queue. Each action is marked SYNCING
// while in flight, removed on success, and marked FAILED with an incremented
// retry count on failure. A failing action never aborts the pass.
func (c *Coordinator) Sync(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return nil, errors.New(errors.ErrSyncInProgress, "a sync pass is already running")
	}
	c.draining = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.draining = false
		c.mu.Unlock()
	}()

	actions, err := c.store.List()
	if err != nil {
		return nil, errors.Wrap(errors.ErrSyncFailed, "reading queue", err)
	}
	if len(actions) == 0 {
		return &Result{}, nil
	}

	c.logger.Info().Int("queued", len(actions)).Msg("draining offline queue")

	result := &Result{}
	for _, action := range actions {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// A SYNCING action in the snapshot is a leftover from an interrupted
		// pass or claimed by another process; leave it alone.
		if action.Status == queue.StatusSyncing {
			result.Skipped++
			continue
		}
		if c.maxReplayAttempts > 0 && action.Status == queue.StatusFailed && action.RetryCount >= c.maxReplayAttempts {
			c.logger.Warn().
				Str("action_id", action.ID).
				Int("retry_count", action.RetryCount).
				Msg("action exceeded replay attempt limit, leaving as failed")
			result.Skipped++
			continue
		}

		if err := c.store.UpdateStatus(action.ID, queue.StatusSyncing); err != nil {
			// Removed by a concurrent Clear or Remove since the snapshot.
			result.Skipped++
			continue
		}

		if err := c.replay(ctx, action); err != nil {
			c.logger.Warn().
				Err(err).
				Str("action_id", action.ID).
				Str("type", string(action.Type)).
				Msg("replay failed, action kept for a later pass")
			if err := c.store.IncrementRetry(action.ID); err != nil {
				c.logger.Error().Err(err).Str("action_id", action.ID).Msg("recording retry count")
			}
			if err := c.store.UpdateStatus(action.ID, queue.StatusFailed); err != nil {
				c.logger.Error().Err(err).Str("action_id", action.ID).Msg("marking action failed")
			}
			result.Failed++
			continue
		}

		if err := c.store.Remove(action.ID); err != nil {
			return result, errors.Wrap(errors.ErrSyncFailed, "removing replayed action", err)
		}
		result.Replayed++
	}

	remaining, err := c.store.Len()
	if err == nil {
		c.logger.Info().
			Int("replayed", result.Replayed).
			Int("failed", result.Failed).
			Int("remaining", remaining).
			Msg("drain pass finished")
	}
	return result, nil
}

// replay dispatches one action to the backend by type.
func (c *Coordinator) replay(ctx context.Context, action queue.Action) error {
	switch action.Type {
	case queue.ActionTranscribe:
		var p queue.TranscribePayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return errors.Wrap(errors.ErrInvalid, "decoding transcribe payload", err)
		}
		// Mobile recordings are stored as file:// URIs.
		path := strings.TrimPrefix(p.AudioURI, "file://")
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(errors.ErrInvalid, "opening recorded audio", err)
		}
		defer f.Close()
		_, err = c.client.Transcribe(ctx, filepath.Base(path), f)
		return err

	case queue.ActionExtract:
		var p queue.ExtractPayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return errors.Wrap(errors.ErrInvalid, "decoding extract payload", err)
		}
		_, err := c.client.Extract(ctx, p.OCRText)
		return err

	case queue.ActionAPICall:
		var p queue.APICallPayload
		if err := json.Unmarshal(action.Payload, &p); err != nil {
			return errors.Wrap(errors.ErrInvalid, "decoding api call payload", err)
		}
		var body interface{}
		if len(p.Body) > 0 {
			body = p.Body
		}
		return c.client.Do(ctx, p.Method, p.Path, body, nil)

	default:
		return errors.New(errors.ErrInvalid, "unknown action type "+string(action.Type))
	}
}

// PendingCount returns the number of actions still awaiting replay.
func (c *Coordinator) PendingCount() (int, error) {
	return c.store.Len()
}
