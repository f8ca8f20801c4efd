package blueprintmock_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/wiring"
	"github.com/sophialabs/blueprintmock/internal/testutil"
)

func setupE2EServer(t *testing.T) (*httptest.Server, *wiring.Container) {
	t.Helper()

	c, err := wiring.New(context.Background(), wiring.Params{
		ConfigPath:  "testdata/config.yaml",
		TraceSize:   100,
		AdminPrefix: "/__admin",
		Seed:        42,
		Logger:      &testutil.NoopLogger{},
	})
	if err != nil {
		t.Fatalf("failed to wire server: %v", err)
	}

	ts := httptest.NewServer(c.Server())
	t.Cleanup(ts.Close)
	return ts, c
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body of %s failed: %v", url, err)
	}
	return resp, string(body)
}

func TestE2E_HealthCheck(t *testing.T) {
	ts, _ := setupE2EServer(t)

	resp, body := get(t, ts.URL+"/api/health")

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if body != `{"status":"healthy"}` {
		t.Errorf("unexpected body: %s", body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type: %s", resp.Header.Get("Content-Type"))
	}
}

func TestE2E_NotConfigured(t *testing.T) {
	ts, _ := setupE2EServer(t)

	resp, body := get(t, ts.URL+"/api/missing")

	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if body != `{"error":"Endpoint not configured"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestE2E_Latency(t *testing.T) {
	ts, _ := setupE2EServer(t)

	start := time.Now()
	resp, body := get(t, ts.URL+"/api/products")
	elapsed := time.Since(start)

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("expected at least 50ms, took %v", elapsed)
	}

	var products []map[string]any
	if err := json.Unmarshal([]byte(body), &products); err != nil {
		t.Fatalf("invalid JSON %s: %v", body, err)
	}
	if len(products) != 2 || products[1]["name"] != "Gadget" {
		t.Errorf("unexpected products: %v", products)
	}
}

func TestE2E_LatencyDoesNotBlockOtherRequests(t *testing.T) {
	ts, _ := setupE2EServer(t)

	const n = 8
	start := time.Now()
	done := make(chan int, n)
	for range n {
		go func() {
			resp, err := http.Get(ts.URL + "/api/products")
			if err != nil {
				done <- 0
				return
			}
			resp.Body.Close()
			done <- resp.StatusCode
		}()
	}
	for range n {
		if status := <-done; status != 200 {
			t.Errorf("expected 200, got %d", status)
		}
	}

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("concurrent delayed requests took %v, expected them to overlap", elapsed)
	}
}

func TestE2E_DynamicRoute(t *testing.T) {
	ts, _ := setupE2EServer(t)

	resp, body := get(t, ts.URL+"/api/users/7")

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"name":"Ada"`) {
		t.Errorf("unexpected body: %s", body)
	}
	if resp.Header.Get("X-Mock") != "true" {
		t.Error("expected X-Mock header")
	}
}

func TestE2E_CreateUser(t *testing.T) {
	ts, _ := setupE2EServer(t)

	resp, err := http.Post(ts.URL+"/api/users", "application/json", strings.NewReader(`{"name":"Grace"}`))
	if err != nil {
		t.Fatalf("POST /api/users failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if string(body) != `{"id":3,"created":true}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestE2E_ErrorRate(t *testing.T) {
	ts, _ := setupE2EServer(t)

	const n = 10_000
	failures := 0
	for range n {
		resp, err := http.Get(ts.URL + "/api/flaky")
		if err != nil {
			t.Fatalf("GET /api/flaky failed: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case 503:
			failures++
			if string(body) != `{"error":"Service unavailable"}` {
				t.Fatalf("unexpected error body: %s", body)
			}
		case 200:
		default:
			t.Fatalf("unexpected status %d", resp.StatusCode)
		}
	}

	rate := float64(failures) / n
	if rate < 0.22 || rate > 0.28 {
		t.Errorf("expected error fraction near 0.25, got %.4f", rate)
	}
}

func TestE2E_AdminTrace(t *testing.T) {
	ts, _ := setupE2EServer(t)

	get(t, ts.URL+"/api/users/7")
	get(t, ts.URL+"/api/missing")

	_, body := get(t, ts.URL+"/__admin/trace?last=5")

	var entries []map[string]any
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["route"] != "/api/users/:id" {
		t.Errorf("unexpected route: %v", entries[0]["route"])
	}
	if entries[1]["outcome"] != "not_found" {
		t.Errorf("unexpected outcome: %v", entries[1]["outcome"])
	}
}

func TestE2E_AdminEndpointsAndMetrics(t *testing.T) {
	ts, c := setupE2EServer(t)

	_, body := get(t, ts.URL+"/__admin/endpoints")
	var endpoints []map[string]any
	if err := json.Unmarshal([]byte(body), &endpoints); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(endpoints) != c.Loaded().Catalog.Len() {
		t.Errorf("expected %d endpoints, got %d", c.Loaded().Catalog.Len(), len(endpoints))
	}

	get(t, ts.URL+"/api/health")
	resp, metrics := get(t, ts.URL+"/__admin/metrics")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(metrics, "blueprintmock_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}
