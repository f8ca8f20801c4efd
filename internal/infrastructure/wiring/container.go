package wiring

import (
	"context"
	"fmt"

	"github.com/sophialabs/blueprintmock/internal/domain/trace"
	inboundhttp "github.com/sophialabs/blueprintmock/internal/infrastructure/inbound/http"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/clock"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/filesystem"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/metrics"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/random"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/usecases"
)

// Params holds the subset of configuration needed to construct infrastructure components.
type Params struct {
	ConfigPath  string
	TraceSize   int
	AdminPrefix string
	Seed        uint64 // 0 = unseeded
	Logger      ports.Logger
}

// Container owns the construction of all infrastructure components.
type Container struct {
	logger   ports.Logger
	server   *inboundhttp.Server
	loaded   *usecases.LoadResult
	simUC    *usecases.SimulateRequestUseCase
	metrics  *metrics.Recorder
	traceBuf *trace.RingBuffer
}

// New loads the configuration and constructs all infrastructure components.
// The catalog is built once here and never changes afterwards.
func New(ctx context.Context, p Params) (*Container, error) {
	repo, err := filesystem.NewDocumentRepository(p.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	loaded, err := usecases.NewLoadCatalogUseCase(repo, p.Logger).Execute(ctx)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	traceBuf := trace.NewRingBuffer(p.TraceSize)
	simUC := usecases.NewSimulateRequestUseCase(
		loaded.Catalog,
		clock.New(),
		random.New(p.Seed),
		recorder,
		p.Logger,
		traceBuf,
	)

	server := inboundhttp.NewServer(simUC, traceBuf, p.Logger, inboundhttp.Options{
		AdminPrefix: p.AdminPrefix,
		Document:    loaded.Root,
		Metrics:     recorder.Handler(),
	})

	return &Container{
		logger:   p.Logger,
		server:   server,
		loaded:   loaded,
		simUC:    simUC,
		metrics:  recorder,
		traceBuf: traceBuf,
	}, nil
}

// Logger returns the logger passed at construction time.
func (c *Container) Logger() ports.Logger {
	return c.logger
}

// Server returns the HTTP mock server.
func (c *Container) Server() *inboundhttp.Server {
	return c.server
}

// Loaded returns the result of loading the configuration.
func (c *Container) Loaded() *usecases.LoadResult {
	return c.loaded
}

// SimulateRequestUseCase returns the use case answering mock requests.
func (c *Container) SimulateRequestUseCase() *usecases.SimulateRequestUseCase {
	return c.simUC
}

// Metrics returns the Prometheus recorder.
func (c *Container) Metrics() *metrics.Recorder {
	return c.metrics
}

// TraceBuf returns the trace ring buffer.
func (c *Container) TraceBuf() *trace.RingBuffer {
	return c.traceBuf
}
