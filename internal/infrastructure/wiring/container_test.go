package wiring_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/wiring"
	"github.com/sophialabs/blueprintmock/internal/testutil"
)

func validParams(t *testing.T) wiring.Params {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	config := `serverPort: 3100
endpoints:
  - method: GET
    path: /api/health
    response:
      status: healthy
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	return wiring.Params{
		ConfigPath:  path,
		TraceSize:   50,
		AdminPrefix: "/__admin",
		Logger:      &testutil.NoopLogger{},
	}
}

func TestNew_Success(t *testing.T) {
	c, err := wiring.New(context.Background(), validParams(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if c.Server() == nil {
		t.Error("Server() returned nil")
	}
	if c.SimulateRequestUseCase() == nil {
		t.Error("SimulateRequestUseCase() returned nil")
	}
	if c.Metrics() == nil {
		t.Error("Metrics() returned nil")
	}
	if c.TraceBuf() == nil {
		t.Error("TraceBuf() returned nil")
	}
	if got := c.Loaded().ServerPort; got != 3100 {
		t.Errorf("expected server port 3100, got %d", got)
	}
}

func TestNew_MissingConfig(t *testing.T) {
	p := validParams(t)
	p.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

	c, err := wiring.New(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if c != nil {
		t.Error("expected nil container on error")
	}
}

func TestNew_EmptyConfig(t *testing.T) {
	p := validParams(t)
	if err := os.WriteFile(p.ConfigPath, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := wiring.New(context.Background(), p)
	if !errors.Is(err, blueprint.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestNew_ComponentsAreWiredCorrectly(t *testing.T) {
	c, err := wiring.New(context.Background(), validParams(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w := httptest.NewRecorder()
	c.Server().ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != 200 || w.Body.String() != `{"status":"healthy"}` {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}
	if c.TraceBuf().Total() != 1 {
		t.Errorf("expected one traced request, got %d", c.TraceBuf().Total())
	}

	w = httptest.NewRecorder()
	c.Server().ServeHTTP(w, httptest.NewRequest("GET", "/__admin/metrics", nil))
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), `blueprintmock_requests_total{method="GET",outcome="served",route="/api/health",status="200"} 1`) {
		t.Errorf("expected request counter in metrics output:\n%s", body)
	}
}

func TestNew_LoggerIsPassedThrough(t *testing.T) {
	p := validParams(t)
	logger := &testutil.NoopLogger{}
	p.Logger = logger

	c, err := wiring.New(context.Background(), p)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.Logger() != logger {
		t.Error("Logger() does not return the same logger instance passed in Params")
	}
}
