// internal/metrics/metrics_test.go
package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tamzrod/ledbridge/internal/logging"
	"github.com/tamzrod/ledbridge/internal/status"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(framesSent.WithLabelValues("regular"))
	FrameSent("regular")
	FrameSent("regular")
	if got := testutil.ToFloat64(framesSent.WithLabelValues("regular")) - before; got != 2 {
		t.Fatalf("frames_sent delta=%v", got)
	}

	before = testutil.ToFloat64(triggers.WithLabelValues(TriggerInvalid))
	Trigger(TriggerInvalid)
	if got := testutil.ToFloat64(triggers.WithLabelValues(TriggerInvalid)) - before; got != 1 {
		t.Fatalf("invalid trigger delta=%v", got)
	}
}

func TestGauges(t *testing.T) {
	SetLinkOpen(true)
	if testutil.ToFloat64(linkOpen) != 1 {
		t.Fatalf("link_open != 1")
	}
	SetLinkOpen(false)
	if testutil.ToFloat64(linkOpen) != 0 {
		t.Fatalf("link_open != 0")
	}

	SetVisibleMarkers(5)
	SetRegistryColors(9)
	if testutil.ToFloat64(visibleMarkers) != 5 || testutil.ToFloat64(registryColors) != 9 {
		t.Fatalf("gauges not set")
	}
}

func TestHandler_Routes(t *testing.T) {
	Restarted()
	h := Handler(status.NewTracker(status.Info{Port: "/dev/x"}, nil))

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/status", http.StatusOK, `"port": "/dev/x"`},
		{"/metrics", http.StatusOK, "ledbridge_restarts_total"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
		if rec.Code != tt.code {
			t.Fatalf("%s: code=%d want %d", tt.path, rec.Code, tt.code)
		}
		if !strings.Contains(rec.Body.String(), tt.body) {
			t.Fatalf("%s: body missing %q", tt.path, tt.body)
		}
	}
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, addr, Handler(status.NewTracker(status.Info{}, nil)), logging.Discard())
	}()

	// Wait for the listener.
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve err=%v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}
