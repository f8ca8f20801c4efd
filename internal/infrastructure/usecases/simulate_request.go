package usecases

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sophialabs/blueprintmock/internal/domain/catalog"
	"github.com/sophialabs/blueprintmock/internal/domain/simulation"
	"github.com/sophialabs/blueprintmock/internal/domain/trace"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/services"
)

// SimulateResult is the outcome of simulating one request.
type SimulateResult struct {
	Response   simulation.Response
	TraceEntry trace.Entry
}

type stage struct {
	name string
	run  func(ctx context.Context, rc *simulation.RequestContext)
}

// SimulateRequestUseCase answers requests from the catalog by running the
// lookup, delay, error injection and response stages in that order. A stage
// that aborts the context ends the run.
type SimulateRequestUseCase struct {
	catalog  *catalog.Catalog
	clock    ports.Clock
	dice     ports.Dice
	metrics  ports.Metrics
	logger   ports.Logger
	traceBuf *trace.RingBuffer
	stages   []stage
}

// NewSimulateRequestUseCase creates a new use case over a built catalog.
func NewSimulateRequestUseCase(
	cat *catalog.Catalog,
	clock ports.Clock,
	dice ports.Dice,
	metrics ports.Metrics,
	logger ports.Logger,
	traceBuf *trace.RingBuffer,
) *SimulateRequestUseCase {
	uc := &SimulateRequestUseCase{
		catalog:  cat,
		clock:    clock,
		dice:     dice,
		metrics:  metrics,
		logger:   logger,
		traceBuf: traceBuf,
	}
	uc.stages = []stage{
		{name: "lookup", run: uc.lookup},
		{name: "delay", run: uc.delay},
		{name: "error_injection", run: uc.injectError},
		{name: "response_prepare", run: uc.prepareResponse},
	}
	return uc
}

// Execute simulates the request and records it in the trace buffer and metrics.
func (uc *SimulateRequestUseCase) Execute(ctx context.Context, method, path string) SimulateResult {
	start := uc.clock.Now()
	rc := simulation.NewRequestContext(method, path)

	for _, st := range uc.stages {
		st.run(ctx, rc)
		if rc.Aborted {
			uc.logger.Debug("simulation aborted", "stage", st.name, "method", method, "path", path)
			break
		}
	}

	resp := rc.Response()
	entry := trace.Entry{
		ID:        uuid.NewString(),
		Timestamp: start,
		Method:    method,
		Path:      path,
		Outcome:   string(resp.Outcome),
		Status:    resp.Status,
		DelayMs:   rc.Delay.Milliseconds(),
	}
	if rc.Blueprint != nil {
		entry.Route = rc.Blueprint.Path
		entry.Params = catalog.Params(rc.Blueprint.Path, path)
	}

	uc.traceBuf.Add(entry)
	uc.metrics.ObserveRequest(method, entry.Route, entry.Outcome, resp.Status, uc.clock.Now().Sub(start))

	return SimulateResult{Response: resp, TraceEntry: entry}
}

func (uc *SimulateRequestUseCase) lookup(_ context.Context, rc *simulation.RequestContext) {
	bp, ok := uc.catalog.Lookup(rc.Method, rc.Path)
	if !ok {
		rc.Status = http.StatusNotFound
		rc.Body = simulation.NotFoundBody()
		rc.Headers = services.JSONHeaders()
		rc.Aborted = true
		return
	}
	rc.Blueprint = bp
}

// delay waits on a timer, parking only this request. It is not cut short by
// the client going away: an admitted request always runs to completion.
func (uc *SimulateRequestUseCase) delay(ctx context.Context, rc *simulation.RequestContext) {
	if rc.Blueprint.LatencyMs <= 0 {
		return
	}
	d := time.Duration(rc.Blueprint.LatencyMs) * time.Millisecond
	if err := uc.clock.SleepContext(context.WithoutCancel(ctx), d); err != nil {
		uc.logger.Warn("latency wait interrupted", "route", rc.Blueprint.Key(), "error", err)
	}
	rc.Delay = d
	uc.metrics.ObserveDelay(rc.Blueprint.Path, d)
}

func (uc *SimulateRequestUseCase) injectError(_ context.Context, rc *simulation.RequestContext) {
	bp := rc.Blueprint
	if bp.ErrorRatePercent <= 0 || uc.dice.Percent() >= bp.ErrorRatePercent {
		return
	}
	rc.Status = bp.ErrorStatus
	rc.Body = bp.ErrorResponse
	rc.Headers = services.JSONHeaders()
	rc.Aborted = true
	rc.IsSimulatedError = true
	uc.logger.Debug("injected error", "route", bp.Key(), "status", bp.ErrorStatus)
}

func (uc *SimulateRequestUseCase) prepareResponse(_ context.Context, rc *simulation.RequestContext) {
	bp := rc.Blueprint
	rc.Status = bp.Status
	rc.Body = bp.Response
	rc.Headers = services.EnsureContentType(bp.Headers)
}

// Catalog returns the catalog requests are answered from.
func (uc *SimulateRequestUseCase) Catalog() *catalog.Catalog {
	return uc.catalog
}
