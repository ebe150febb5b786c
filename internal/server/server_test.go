package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(http.NotFoundHandler(), Config{Address: ":0"})

	if s.shutdownTimeout != 10*time.Second {
		t.Errorf("default shutdown timeout: expected 10s, got %v", s.shutdownTimeout)
	}
	if s.httpServer.ReadTimeout != 10*time.Second {
		t.Errorf("default read timeout: expected 10s, got %v", s.httpServer.ReadTimeout)
	}
	if s.httpServer.WriteTimeout != 10*time.Second {
		t.Errorf("default write timeout: expected 10s, got %v", s.httpServer.WriteTimeout)
	}
	if s.httpServer.IdleTimeout != 60*time.Second {
		t.Errorf("default idle timeout: expected 60s, got %v", s.httpServer.IdleTimeout)
	}
}

func TestHandleReadiness(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		ready      bool
		shutdown   bool
		wantStatus int
		wantBody   string
	}{
		{"serving", http.MethodGet, true, false, http.StatusOK, "ready"},
		{"not started", http.MethodGet, false, false, http.StatusServiceUnavailable, "unavailable"},
		{"shutting down", http.MethodGet, true, true, http.StatusServiceUnavailable, "unavailable"},
		{"wrong method", http.MethodPost, true, false, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(http.NotFoundHandler(), Config{})
			s.ready.Store(tt.ready)
			s.inShutdown.Store(tt.shutdown)

			req := httptest.NewRequest(tt.method, "/healthz", nil)
			w := httptest.NewRecorder()
			s.handleReadiness(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody == "" {
				return
			}
			var body readiness
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Errorf("status field = %q, want %q", body.Status, tt.wantBody)
			}
		})
	}
}

func TestServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	})
	s := NewServer(handler, Config{ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/api/anything")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "hello" {
		t.Errorf("body = %q, want hello", body)
	}

	resp, err = http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !s.IsShuttingDown() {
		t.Error("expected IsShuttingDown after Shutdown")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewServer(http.NotFoundHandler(), Config{ShutdownTimeout: time.Second})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			var body readiness
			_ = json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				if body.Version == "" {
					t.Error("readiness should report the version")
				}
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("server never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !s.IsShuttingDown() {
		t.Error("expected IsShuttingDown after Run returned")
	}
}

func TestRunReportsServeFailure(t *testing.T) {
	s := NewServer(http.NotFoundHandler(), Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()

	if err := s.Run(context.Background(), ln); err == nil {
		t.Error("Run on a closed listener should fail")
	}
}
