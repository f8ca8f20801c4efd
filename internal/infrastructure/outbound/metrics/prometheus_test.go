package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/metrics"
)

func TestRecorder_ObserveRequest(t *testing.T) {
	r := metrics.NewRecorder()

	r.ObserveRequest("GET", "/api/health", "served", 200, 3*time.Millisecond)
	r.ObserveRequest("GET", "/api/health", "served", 200, 5*time.Millisecond)
	r.ObserveRequest("GET", "", "not_found", 404, time.Millisecond)

	expected := `
# HELP blueprintmock_requests_total Simulated requests by route and outcome.
# TYPE blueprintmock_requests_total counter
blueprintmock_requests_total{method="GET",outcome="not_found",route="",status="404"} 1
blueprintmock_requests_total{method="GET",outcome="served",route="/api/health",status="200"} 2
`
	if err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "blueprintmock_requests_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestRecorder_NonStandardMethodsShareOneSeries(t *testing.T) {
	r := metrics.NewRecorder()

	r.ObserveRequest("BREW", "", "not_found", 404, time.Millisecond)
	r.ObserveRequest("x-custom", "", "not_found", 404, time.Millisecond)
	r.ObserveRequest("get", "", "not_found", 404, time.Millisecond)
	r.ObserveRequest("DELETE", "", "not_found", 404, time.Millisecond)

	expected := `
# HELP blueprintmock_requests_total Simulated requests by route and outcome.
# TYPE blueprintmock_requests_total counter
blueprintmock_requests_total{method="DELETE",outcome="not_found",route="",status="404"} 1
blueprintmock_requests_total{method="OTHER",outcome="not_found",route="",status="404"} 3
`
	if err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "blueprintmock_requests_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveDelay("/api/products", 50*time.Millisecond)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), `blueprintmock_injected_delay_seconds_count{route="/api/products"} 1`) {
		t.Errorf("delay histogram missing from output:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected Go runtime collector output")
	}
}
