// Package perf times hot paths when PTERM_PERF is set.
package perf

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop()
)

// Enable turns timing output on, writing through log.
func Enable(log *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	logger = log.Named("perf")
}

// Disable turns timing output off.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger = zap.NewNop()
}

// Timer tracks elapsed time for a named operation
type Timer struct {
	name   string
	fields []zap.Field
	start  time.Time
}

// Start begins timing an operation
func Start(name string, fields ...zap.Field) *Timer {
	return &Timer{
		name:   name,
		fields: fields,
		start:  time.Now(),
	}
}

// Stop ends timing and logs the result
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	mu.RLock()
	on, log := enabled, logger
	mu.RUnlock()
	if on {
		log.Info(t.name, append(t.fields, zap.Duration("elapsed", elapsed))...)
	}
	return elapsed
}

// Track is a convenience function that times a function call
func Track(name string, fn func()) time.Duration {
	t := Start(name)
	fn()
	return t.Stop()
}

// IsEnabled returns whether performance logging is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}
