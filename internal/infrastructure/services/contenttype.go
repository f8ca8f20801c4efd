package services

import (
	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/domain/simulation"
)

const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// EnsureContentType returns headers with a JSON Content-Type appended when
// none is configured. The input slice is not modified.
func EnsureContentType(headers []blueprint.Header) []blueprint.Header {
	if simulation.HasHeader(headers, HeaderContentType) {
		return headers
	}
	out := make([]blueprint.Header, 0, len(headers)+1)
	out = append(out, headers...)
	return append(out, blueprint.Header{Name: HeaderContentType, Value: ContentTypeJSON})
}

// JSONHeaders is the header set of the not-found and simulated-error outcomes.
func JSONHeaders() []blueprint.Header {
	return []blueprint.Header{{Name: HeaderContentType, Value: ContentTypeJSON}}
}
