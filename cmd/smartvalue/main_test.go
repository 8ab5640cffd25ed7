package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/smartvalue/internal/config"
	"github.com/vango-dev/smartvalue/internal/demo"
	"github.com/vango-dev/smartvalue/internal/errors"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version output = %q, want %q", out, version)
	}
}

func TestDemoCmdReactive(t *testing.T) {
	out, err := executeCmd(t, "demo", "inc", "add:5")
	if err != nil {
		t.Fatalf("demo error = %v", err)
	}

	for _, want := range []string{
		"add:5    current=6 initial=0 previous=1 renders=3",
		"view: Current Value: 6 | Initial Value: 0",
		"2 actions applied",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDemoCmdSilent(t *testing.T) {
	out, err := executeCmd(t, "demo", "--ref", "set:5", "reset")
	if err != nil {
		t.Fatalf("demo error = %v", err)
	}

	if !strings.Contains(out, "reset    current=0 initial=0 previous=- renders=1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDemoCmdInvalidAction(t *testing.T) {
	_, err := executeCmd(t, "demo", "triple")
	if !errors.HasCode(err, "E101") {
		t.Errorf("expected E101, got %v", err)
	}
}

func TestDemoCmdEnvConfig(t *testing.T) {
	t.Setenv("SMARTVALUE_DEMO_INITIAL", "10")

	out, err := executeCmd(t, "demo", "double")
	if err != nil {
		t.Fatalf("demo error = %v", err)
	}
	if !strings.Contains(out, "double   current=20 initial=10") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func newTestServer(t *testing.T) (*demoServer, http.Handler) {
	t.Helper()
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := newDemoServer(config.New(), logger, registry)
	t.Cleanup(s.close)
	return s, s.routes(registry)
}

func TestServeAction(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reactive/inc", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var snap demo.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Current != 1 || snap.Renders != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestServeActionRedirects(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/silent/inc", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func TestServeErrors(t *testing.T) {
	_, handler := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/reactive/triple", http.StatusBadRequest},
		{http.MethodPost, "/api/unknown/inc", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestServeIndexAndMetrics(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/silent/inc", nil))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "reactive (reactive)") || !strings.Contains(body, "silent (silent)") {
		t.Errorf("index missing counters:\n%s", body)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `smartvalue_writes_total{mode="silent",name="silent"} 1`) {
		t.Errorf("metrics missing silent write:\n%s", rec.Body.String())
	}
}

func TestServeSnapshot(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/silent", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"mode":"silent"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func dialLive(t *testing.T, srv *httptest.Server, counter string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + counter
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func postAction(t *testing.T, srv *httptest.Server, path string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s = %d", path, resp.StatusCode)
	}
}

func waitForClients(t *testing.T, s *demoServer, counter string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.live.clientCount(counter) != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d live clients for %s, got %d", want, counter, s.live.clientCount(counter))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServeLiveReactivePushesRenders(t *testing.T) {
	s, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	conn := dialLive(t, srv, "reactive")

	var snap demo.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if snap.Renders != 1 || snap.Current != 0 {
		t.Errorf("initial snapshot = %+v", snap)
	}
	waitForClients(t, s, "reactive", 1)

	postAction(t, srv, "/api/reactive/inc")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read pushed snapshot: %v", err)
	}
	if snap.Current != 1 || snap.Renders != 2 || !snap.HasPrevious {
		t.Errorf("pushed snapshot = %+v", snap)
	}
	if snap.View != "Current Value: 1 | Initial Value: 0" {
		t.Errorf("pushed view = %q", snap.View)
	}
}

func TestServeLiveSilentNeverPushes(t *testing.T) {
	s, handler := newTestServer(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	conn := dialLive(t, srv, "silent")

	var snap demo.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	waitForClients(t, s, "silent", 1)

	postAction(t, srv, "/api/silent/inc")

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("silent counter should not push a re-render")
	}
}

func TestServeLiveUnknownCounter(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
