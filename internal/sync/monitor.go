package sync

import (
	"context"
	gosync "sync"
	"time"

	"github.com/rs/zerolog"
)

// Pinger probes backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor polls backend connectivity and triggers a drain pass on every
// offline-to-online transition. It starts assuming offline so the first
// successful probe flushes anything queued from a previous run.
type Monitor struct {
	pinger      Pinger
	coordinator *Coordinator
	interval    time.Duration
	logger      zerolog.Logger

	stopCh  chan struct{}
	wg      gosync.WaitGroup
	mu      gosync.RWMutex
	running bool
	online  bool
}

// NewMonitor creates a Monitor probing at the given interval.
func NewMonitor(pinger Pinger, coordinator *Coordinator, interval time.Duration, logger zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		pinger:      pinger,
		coordinator: coordinator,
		interval:    interval,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}
}

// Start launches the probe loop. Calling Start on a running monitor is a
// no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.loop(ctx)

	m.logger.Info().Dur("interval", m.interval).Msg("connectivity monitor started")
}

// Stop halts the probe loop and waits for it to finish. Safe to call more
// than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()

	m.logger.Info().Msg("connectivity monitor stopped")
}

// IsOnline reports the result of the most recent probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *Monitor) loop(ctx context.Context) {
	defer m.wg.Done()

	// Probe immediately instead of waiting out the first tick.
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	err := m.pinger.Ping(ctx)
	nowOnline := err == nil

	m.mu.Lock()
	wasOnline := m.online
	m.online = nowOnline
	m.mu.Unlock()

	if nowOnline == wasOnline {
		return
	}

	if !nowOnline {
		m.logger.Warn().Err(err).Msg("backend unreachable, queuing mode")
		return
	}

	m.logger.Info().Msg("connectivity restored")
	if _, err := m.coordinator.Sync(ctx); err != nil {
		m.logger.Error().Err(err).Msg("drain after reconnect failed")
	}
}
