package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTickInterval matches the original page's 150ms timer
const DefaultTickInterval = 150 * time.Millisecond

// Ticker is anything advanced one step at a time
type Ticker interface {
	Tick()
}

// Loop calls Tick at a fixed interval from a single goroutine, so ticks
// never overlap.
type Loop struct {
	target   Ticker
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewLoop(target Ticker, interval time.Duration, logger *zap.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		target:   target,
		interval: interval,
		logger:   logger,
	}
}

// Run ticks until ctx is done. It returns nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("tick loop started", zap.Duration("interval", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("tick loop stopped")
			return nil
		case <-ticker.C:
			l.target.Tick()
		}
	}
}

// Start runs the loop in the background until Stop or ctx is done
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true

	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		_ = l.Run(ctx)
	}()
}

// Stop halts a started loop and waits for the last tick to finish
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	cancel := l.cancel
	l.mu.Unlock()

	cancel()
	l.wg.Wait()
}
