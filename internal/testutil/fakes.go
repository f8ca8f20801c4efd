package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
)

var _ ports.Logger = (*NoopLogger)(nil)

// NoopLogger discards all log output.
type NoopLogger struct{}

func (l *NoopLogger) Info(string, ...any)  {}
func (l *NoopLogger) Warn(string, ...any)  {}
func (l *NoopLogger) Error(string, ...any) {}
func (l *NoopLogger) Debug(string, ...any) {}

var _ ports.Clock = (*FixedClock)(nil)

// FixedClock returns a fixed time and never sleeps. Requested sleeps are
// recorded along with the context they were given.
type FixedClock struct {
	T time.Time

	mu     sync.Mutex
	sleeps []time.Duration
	ctxs   []context.Context
}

func (c *FixedClock) Now() time.Time { return c.T }

func (c *FixedClock) SleepContext(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.ctxs = append(c.ctxs, ctx)
	return ctx.Err()
}

// Sleeps returns the durations passed to SleepContext.
func (c *FixedClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// SleepContexts returns the contexts passed to SleepContext.
func (c *FixedClock) SleepContexts() []context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]context.Context(nil), c.ctxs...)
}

var _ ports.Dice = (*ScriptedDice)(nil)

// ScriptedDice returns its values in order and then repeats the last one.
// An empty script always returns 0.
type ScriptedDice struct {
	Values []float64

	mu    sync.Mutex
	next  int
	calls int
}

func (d *ScriptedDice) Percent() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if len(d.Values) == 0 {
		return 0
	}
	v := d.Values[min(d.next, len(d.Values)-1)]
	d.next++
	return v
}

// Calls returns how many times Percent was called.
func (d *ScriptedDice) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

var _ ports.Metrics = (*RecordingMetrics)(nil)

// RequestObservation is one ObserveRequest call.
type RequestObservation struct {
	Method  string
	Route   string
	Outcome string
	Status  int
}

// RecordingMetrics keeps every observation in memory.
type RecordingMetrics struct {
	mu       sync.Mutex
	requests []RequestObservation
	delays   []time.Duration
}

func (m *RecordingMetrics) ObserveRequest(method, route, outcome string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, RequestObservation{Method: method, Route: route, Outcome: outcome, Status: status})
}

func (m *RecordingMetrics) ObserveDelay(_ string, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, delay)
}

// Requests returns the recorded request observations.
func (m *RecordingMetrics) Requests() []RequestObservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RequestObservation(nil), m.requests...)
}

// Delays returns the recorded delays.
func (m *RecordingMetrics) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.delays...)
}

var _ blueprint.Repository = (*StaticRepository)(nil)

// StaticRepository serves a document parsed from Text, or fails with Err.
type StaticRepository struct {
	Text string
	Err  error
}

func (r *StaticRepository) Load(ctx context.Context) (markup.Value, error) {
	if err := ctx.Err(); err != nil {
		return markup.Value{}, err
	}
	if r.Err != nil {
		return markup.Value{}, r.Err
	}
	root := markup.Parse(r.Text)
	if root.Len() == 0 {
		return markup.Value{}, blueprint.ErrEmptyDocument
	}
	return root, nil
}

func (r *StaticRepository) Source() string { return "memory" }
