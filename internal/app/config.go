package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/filesystem"
)

// Config holds all configurable parameters for the application.
type Config struct {
	ConfigPath  string `validate:"required"`
	Port        int    `validate:"gte=0,lte=65535"` // 0 = serverPort from the document
	TraceSize   int    `validate:"gte=1"`
	AdminPrefix string `validate:"omitempty,startswith=/"`
	Seed        uint64 // 0 = unseeded

	LogLevel  string    `validate:"oneof=debug info warn error"`
	LogFormat string    `validate:"oneof=text json logfmt"`
	LogOutput io.Writer `validate:"required"`

	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	// LatencyHeadroom is kept between the longest configured latency and
	// the write timeout.
	LatencyHeadroom time.Duration `validate:"gte=0"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		ConfigPath:  filesystem.DefaultConfigPath(),
		TraceSize:   200,
		AdminPrefix: "/__admin",

		LogLevel:  "info",
		LogFormat: "text",
		LogOutput: os.Stdout,

		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LatencyHeadroom: 10 * time.Second,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EffectiveWriteTimeout returns the write timeout, raised when a configured
// latency would not fit in it.
func (c Config) EffectiveWriteTimeout(maxLatency time.Duration) time.Duration {
	return max(c.WriteTimeout, maxLatency+c.LatencyHeadroom)
}
