package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/simulation"
)

func TestRequestContext_Outcome(t *testing.T) {
	bp := &blueprint.Blueprint{Method: "GET", Path: "/x"}

	tests := []struct {
		name string
		rc   *simulation.RequestContext
		want simulation.Outcome
	}{
		{"no blueprint", &simulation.RequestContext{}, simulation.OutcomeNotFound},
		{"served", &simulation.RequestContext{Blueprint: bp}, simulation.OutcomeServed},
		{"simulated error", &simulation.RequestContext{Blueprint: bp, IsSimulatedError: true, Aborted: true}, simulation.OutcomeSimulatedError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rc.Outcome())
		})
	}
}

func TestRequestContext_ResponseCopiesHeaders(t *testing.T) {
	rc := simulation.NewRequestContext("GET", "/x")
	rc.Status = 200
	rc.Headers = []blueprint.Header{{Name: "X-Mock", Value: "true"}}

	resp := rc.Response()
	rc.Headers[0].Value = "changed"

	v, _ := resp.Header("x-mock")
	assert.Equal(t, "true", v, "response keeps its own headers")
	_, ok := resp.Header("Content-Type")
	assert.False(t, ok)
}

func TestHasHeader_CaseInsensitive(t *testing.T) {
	headers := []blueprint.Header{{Name: "content-TYPE", Value: "text/plain"}}
	assert.True(t, simulation.HasHeader(headers, "Content-Type"))
	assert.False(t, simulation.HasHeader(nil, "Content-Type"))
}
