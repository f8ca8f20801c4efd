package blueprint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sophialabs/blueprintmock/internal/domain/markup"
)

const (
	DefaultServerPort  = 3000
	DefaultStatus      = 200
	DefaultErrorStatus = 500

	// MinStatus and MaxStatus bound the status codes an endpoint may answer.
	MinStatus = 100
	MaxStatus = 999
)

var (
	// ErrMissingMethod is reported for endpoint entries without a method.
	ErrMissingMethod = errors.New("endpoint has no method")
	// ErrMissingPath is reported for endpoint entries without a path.
	ErrMissingPath = errors.New("endpoint has no path")
	// ErrNotRecord is reported for endpoint entries that are not mappings.
	ErrNotRecord = errors.New("endpoint entry is not a record")
	// ErrInvalidStatus is reported for status codes outside MinStatus..MaxStatus.
	// The endpoint is kept with the default status.
	ErrInvalidStatus = errors.New("status code out of range")
)

// DefaultErrorResponse is the body of a simulated error when none is configured.
func DefaultErrorResponse() markup.Value {
	return markup.Mapping(markup.Entry{Key: "error", Value: markup.String("Simulated error")})
}

// Blueprint is one configured endpoint: how it is matched and what it
// answers. It is never modified after decoding.
type Blueprint struct {
	Method           string
	Path             string
	Status           int
	Response         markup.Value
	Headers          []Header
	LatencyMs        int
	ErrorRatePercent float64
	ErrorStatus      int
	ErrorResponse    markup.Value
}

// Header is one configured response header, in document order.
type Header struct {
	Name  string
	Value string
}

// Key returns the METHOD:path identifier of the blueprint.
func (b *Blueprint) Key() string {
	return b.Method + ":" + b.Path
}

// Document is the decoded configuration file.
type Document struct {
	ServerPort int
	Endpoints  []*Blueprint
}

// Issue describes a problem with one endpoint entry. Skipped entries are
// not part of the document; otherwise a default replaced the bad field.
type Issue struct {
	Index   int
	Err     error
	Skipped bool
}

func (i Issue) Error() string {
	return fmt.Sprintf("endpoint #%d: %v", i.Index, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

// FromDocument decodes the parsed configuration. Unusable endpoint entries
// are skipped and returned as issues; missing fields take their defaults,
// and out of range status codes are reported and take theirs.
func FromDocument(root markup.Value) (*Document, []Issue) {
	doc := &Document{ServerPort: DefaultServerPort}

	if port, ok := intField(root, "serverPort"); ok && port > 0 {
		doc.ServerPort = port
	}

	endpoints, ok := root.Get("endpoints")
	if !ok || !endpoints.IsSequence() {
		return doc, nil
	}

	var issues []Issue
	for i, entry := range endpoints.Items() {
		bp, warnings, err := decodeEndpoint(entry)
		if err != nil {
			issues = append(issues, Issue{Index: i, Err: err, Skipped: true})
			continue
		}
		for _, w := range warnings {
			issues = append(issues, Issue{Index: i, Err: w})
		}
		doc.Endpoints = append(doc.Endpoints, bp)
	}
	return doc, issues
}

func decodeEndpoint(v markup.Value) (*Blueprint, []error, error) {
	if !v.IsMapping() {
		return nil, nil, ErrNotRecord
	}

	method := strings.ToUpper(stringField(v, "method"))
	if method == "" {
		return nil, nil, ErrMissingMethod
	}
	path := stringField(v, "path")
	if path == "" {
		return nil, nil, ErrMissingPath
	}

	bp := &Blueprint{
		Method:        method,
		Path:          path,
		Status:        DefaultStatus,
		ErrorStatus:   DefaultErrorStatus,
		ErrorResponse: DefaultErrorResponse(),
	}

	var warnings []error
	var err error
	if bp.Status, err = statusField(v, "status", DefaultStatus); err != nil {
		warnings = append(warnings, err)
	}
	if resp, ok := v.Get("response"); ok {
		bp.Response = resp
	}
	if h, ok := v.Get("headers"); ok {
		bp.Headers = decodeHeaders(h)
	}
	if latency, ok := intField(v, "latency"); ok && latency > 0 {
		bp.LatencyMs = latency
	}
	if rate, ok := floatField(v, "errorRate"); ok {
		bp.ErrorRatePercent = min(max(rate, 0), 100)
	}
	if bp.ErrorStatus, err = statusField(v, "errorStatus", DefaultErrorStatus); err != nil {
		warnings = append(warnings, err)
	}
	if resp, ok := v.Get("errorResponse"); ok && !resp.IsNull() {
		bp.ErrorResponse = resp
	}

	return bp, warnings, nil
}

// decodeHeaders accepts a mapping, or a sequence of one-key records as the
// "- Name: value" form produces.
func decodeHeaders(v markup.Value) []Header {
	var headers []Header
	add := func(entries []markup.Entry) {
		for _, e := range entries {
			if !e.Value.IsScalar() || e.Key == "" {
				continue
			}
			headers = append(headers, Header{Name: e.Key, Value: e.Value.Text()})
		}
	}

	switch {
	case v.IsMapping():
		add(v.Entries())
	case v.IsSequence():
		for _, item := range v.Items() {
			if item.IsMapping() {
				add(item.Entries())
			}
		}
	}
	return headers
}

func stringField(v markup.Value, key string) string {
	f, ok := v.Get(key)
	if !ok || !f.IsScalar() || f.IsNull() {
		return ""
	}
	return strings.TrimSpace(f.Text())
}

func intField(v markup.Value, key string) (int, bool) {
	f, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := f.AsInt()
	return int(n), ok
}

// statusField falls back silently for a missing, zero or non-integer code
// and with ErrInvalidStatus for any other code out of range.
func statusField(v markup.Value, key string, fallback int) (int, error) {
	status, ok := intField(v, key)
	if !ok || status == 0 {
		return fallback, nil
	}
	if status < MinStatus || status > MaxStatus {
		return fallback, fmt.Errorf("%s %d: %w", key, status, ErrInvalidStatus)
	}
	return status, nil
}

func floatField(v markup.Value, key string) (float64, bool) {
	f, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	return f.AsFloat()
}
