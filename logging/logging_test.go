package logging

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetWeekKey(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"mid year", time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), "2026-W35"},
		{"iso week of previous year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
		{"single digit week padded", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), "2026-W06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getWeekKey(tt.time); got != tt.want {
				t.Errorf("getWeekKey(%v) = %q, want %q", tt.time, got, tt.want)
			}
		})
	}
}

func TestRotatingLogger_WritesToWeekFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer rl.Close()

	if _, err := rl.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(dir, "farma-"+getWeekKey(time.Now())+".log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected log file at %s: %v", want, err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("Expected written content in log file, got %q", data)
	}
}

func TestSetupLogger_ReturnsUsableLogger(t *testing.T) {
	logger := SetupLogger(t.TempDir(), 1)
	if logger == nil {
		t.Fatal("SetupLogger returned nil")
	}

	// Must not panic
	logger.Info("test message", "key", "value")
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	handler := LoggingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/api/health", "/metrics", "/api/inventory"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestPackageFunctions_NoPanicWithoutInit(t *testing.T) {
	DefaultLoggingService = nil

	// All of these must fall back to stderr rather than panic
	Info("info message", "k", "v")
	Warn("warn message")
	Error("error message", "error", os.ErrNotExist)
	Debug("debug message")

	if Logger() != nil {
		t.Error("Expected nil logger before InitLogger")
	}
}
