// Package simulation holds the per-request state threaded through the
// simulation stages and the response descriptor they produce.
package simulation

import (
	"time"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
)

// Outcome is the terminal result of a simulated request.
type Outcome string

const (
	OutcomeNotFound       Outcome = "not_found"
	OutcomeSimulatedError Outcome = "simulated_error"
	OutcomeServed         Outcome = "served"
)

// NotFoundBody is the body answered when no blueprint matches.
func NotFoundBody() markup.Value {
	return markup.Mapping(markup.Entry{Key: "error", Value: markup.String("Endpoint not configured")})
}

// RequestContext is owned by a single request for the duration of the
// simulation and discarded afterwards.
type RequestContext struct {
	Method    string
	Path      string
	Blueprint *blueprint.Blueprint

	Status  int
	Body    markup.Value
	Headers []blueprint.Header
	Delay   time.Duration

	Aborted          bool
	IsSimulatedError bool
}

// NewRequestContext starts the context for one request.
func NewRequestContext(method, path string) *RequestContext {
	return &RequestContext{Method: method, Path: path}
}

// Outcome classifies the context once the stages have run.
func (rc *RequestContext) Outcome() Outcome {
	switch {
	case rc.IsSimulatedError:
		return OutcomeSimulatedError
	case rc.Blueprint == nil:
		return OutcomeNotFound
	default:
		return OutcomeServed
	}
}

// Response is the finished descriptor handed to the transport.
type Response struct {
	Status  int
	Headers []blueprint.Header
	Body    markup.Value
	Outcome Outcome
}

// Response freezes the context into a descriptor.
func (rc *RequestContext) Response() Response {
	return Response{
		Status:  rc.Status,
		Headers: append([]blueprint.Header(nil), rc.Headers...),
		Body:    rc.Body,
		Outcome: rc.Outcome(),
	}
}

// Header returns the value of the named header, compared case-insensitively.
func (r Response) Header(name string) (string, bool) {
	return lookupHeader(r.Headers, name)
}
