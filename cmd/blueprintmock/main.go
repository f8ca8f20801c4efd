package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/sophialabs/blueprintmock/internal/app"
)

const version = "0.1.0"

type args struct {
	Config          string        `arg:"positional" help:"path to the endpoint configuration (default: config.yaml next to the executable)"`
	Port            int           `arg:"-p,--port,env:BLUEPRINTMOCK_PORT" help:"listen port, overrides serverPort from the configuration"`
	LogLevel        string        `arg:"-l,--log-level,env:BLUEPRINTMOCK_LOG_LEVEL" help:"log level (debug, info, warn, error)"`
	LogFormat       string        `arg:"--log-format,env:BLUEPRINTMOCK_LOG_FORMAT" help:"log format (text, json, logfmt)"`
	TraceSize       int           `arg:"--trace-size,env:BLUEPRINTMOCK_TRACE_SIZE" help:"number of requests kept for the trace endpoint"`
	AdminPrefix     *string       `arg:"--admin-prefix,env:BLUEPRINTMOCK_ADMIN_PREFIX" help:"path prefix of the admin routes, empty disables them"`
	Seed            uint64        `arg:"--seed,env:BLUEPRINTMOCK_SEED" help:"seed for error injection, 0 for a random seed"`
	ShutdownTimeout time.Duration `arg:"--shutdown-timeout,env:BLUEPRINTMOCK_SHUTDOWN_TIMEOUT" help:"grace period for in-flight requests on shutdown"`
}

func (args) Description() string {
	return "blueprintmock serves mock HTTP endpoints described by a configuration file."
}

func (args) Version() string {
	return "blueprintmock " + version
}

func main() {
	cfg := app.DefaultConfig()
	a := args{
		LogLevel:        cfg.LogLevel,
		LogFormat:       cfg.LogFormat,
		TraceSize:       cfg.TraceSize,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
	arg.MustParse(&a)

	if a.Config != "" {
		cfg.ConfigPath = a.Config
	}
	if a.AdminPrefix != nil {
		cfg.AdminPrefix = *a.AdminPrefix
	}
	cfg.Port = a.Port
	cfg.LogLevel = a.LogLevel
	cfg.LogFormat = a.LogFormat
	cfg.TraceSize = a.TraceSize
	cfg.Seed = a.Seed
	cfg.ShutdownTimeout = a.ShutdownTimeout

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
