package ports

import (
	"context"
	"time"
)

// Clock provides the current time and timer based waiting (for testing).
type Clock interface {
	Now() time.Time
	// SleepContext waits for d or until ctx is cancelled. Returns ctx.Err() if cancelled.
	SleepContext(ctx context.Context, d time.Duration) error
}

// Logger provides structured logging.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Dice draws the random numbers used for error injection.
type Dice interface {
	// Percent returns a uniform value in [0, 100).
	Percent() float64
}

// Metrics records the outcome of simulated requests.
type Metrics interface {
	ObserveRequest(method, route, outcome string, status int, elapsed time.Duration)
	ObserveDelay(route string, delay time.Duration)
}
