package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("source", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "ok"}
	})

	if checker.Name() != "source" {
		t.Errorf("Name() = %v, want source", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy || result.Message != "ok" {
		t.Errorf("Check() = %+v", result)
	}

	if CheckFunc(nil).Name() != "unknown" {
		t.Error("CheckFunc name should default to unknown")
	}
}

func TestRegistry_Check(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[string]Status
		want     Status
	}{
		{"empty", map[string]Status{}, StatusHealthy},
		{"all healthy", map[string]Status{"a": StatusHealthy, "b": StatusHealthy}, StatusHealthy},
		{"degraded", map[string]Status{"a": StatusHealthy, "b": StatusDegraded}, StatusDegraded},
		{"unhealthy wins", map[string]Status{"a": StatusDegraded, "b": StatusUnhealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("astview", "0.1.0")
			for name, status := range tt.statuses {
				status := status
				registry.RegisterFunc(name, func(ctx context.Context) CheckResult {
					return CheckResult{Status: status}
				})
			}

			report := registry.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %v, want %v", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Errorf("Checks count = %v, want %v", len(report.Checks), len(tt.statuses))
			}
		})
	}
}

func TestRegistry_OrderedAndNamed(t *testing.T) {
	registry := NewRegistry("astview", "0.1.0")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		registry.RegisterFunc(name, func(ctx context.Context) CheckResult {
			return CheckResult{Status: StatusHealthy}
		})
	}

	report := registry.Check(context.Background())
	want := []string{"alpha", "mid", "zeta"}
	for i, check := range report.Checks {
		if check.Name != want[i] {
			t.Errorf("Checks[%d].Name = %v, want %v", i, check.Name, want[i])
		}
		if check.Timestamp.IsZero() {
			t.Errorf("Checks[%d].Timestamp not set", i)
		}
	}

	registry.Unregister("mid")
	if got := len(registry.Check(context.Background()).Checks); got != 2 {
		t.Errorf("after Unregister: %d checks, want 2", got)
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("astview", "0.1.0")

	var counter int32
	for i := 0; i < 5; i++ {
		registry.RegisterFunc("check"+string(rune('A'+i)), func(ctx context.Context) CheckResult {
			atomic.AddInt32(&counter, 1)
			time.Sleep(10 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	registry.CheckWithTimeout(time.Second)

	if atomic.LoadInt32(&counter) != 5 {
		t.Errorf("Counter = %v, want 5", counter)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Errorf("checks did not run concurrently")
	}
}

func TestRegistry_Handler(t *testing.T) {
	registry := NewRegistry("astview", "0.1.0")
	registry.Register(AlwaysHealthy("self"))

	rec := httptest.NewRecorder()
	registry.Handler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Service != "astview" || report.Status != StatusHealthy || len(report.Checks) != 1 {
		t.Errorf("report = %+v", report)
	}

	registry.Register(FileCheck("source", filepath.Join(t.TempDir(), "missing.json")))
	rec = httptest.NewRecorder()
	registry.Handler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestFileCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	result := FileCheck("source", path).Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy (%s)", result.Status, result.Message)
	}
	if result.Details["size"] != int64(2) {
		t.Errorf("Details[size] = %v, want 2", result.Details["size"])
	}

	result = FileCheck("source", path+".gone").Check(context.Background())
	if result.Status != StatusUnhealthy || result.Message == "" {
		t.Errorf("missing file result = %+v", result)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{Service: "astview", Status: StatusHealthy, Uptime: time.Hour, Checks: []CheckResult{{}, {}}}

	if got := report.String(); got != "Service: astview, Status: healthy, Uptime: 1h0m0s, Checks: 2" {
		t.Errorf("String() = %q", got)
	}
}
