package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/astview/foundation/core/error"
	"github.com/msto63/astview/pkg/core/logging"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	s := New(cfg, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(s.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, nil)
	defer s.Close()
	want := DefaultConfig()
	if s.config.Addr != want.Addr || s.config.Title != want.Title || s.config.PollInterval != want.PollInterval {
		t.Errorf("config = %+v, want defaults %+v", s.config, want)
	}
}

func TestServer_Page(t *testing.T) {
	_, ts := newTestServer(t, Config{Title: "Demo <AST>"})

	status, body := get(t, ts.URL+PathPage)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	for _, want := range []string{
		"<title>Demo &lt;AST&gt;</title>",
		`data-socket="/ws"`,
		"<details>",
		"<summary>StmtVar</summary>",
		"<script>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}

	status, _ = get(t, ts.URL+"/nope")
	if status != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", status)
	}
}

func TestServer_Fragment(t *testing.T) {
	path := writeSource(t, `{"type": "ExprVariable", "name": {"lexeme": "foo", "tokenType": "IDENTIFIER"}}`)
	_, ts := newTestServer(t, Config{Source: path})

	status, body := get(t, ts.URL+PathFragment)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "ExprVariable &#39;foo&#39;" {
		t.Errorf("fragment = %q", body)
	}
}

func TestServer_SourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"missing", filepath.Join(t.TempDir(), "missing.json"), http.StatusNotFound},
		{"invalid", writeSource(t, `{"a": 1}`), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t, Config{Source: tt.source})
			for _, path := range []string{PathPage, PathFragment} {
				if status, _ := get(t, ts.URL+path); status != tt.want {
					t.Errorf("GET %s status = %d, want %d", path, status, tt.want)
				}
			}
		})
	}
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	status, body := get(t, ts.URL+PathHealth)
	if status != http.StatusOK {
		t.Errorf("demo health status = %d, want 200", status)
	}
	var report struct {
		Service string `json:"service"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		t.Fatalf("health body: %v", err)
	}
	if report.Service != "astview" || report.Status != "healthy" {
		t.Errorf("report = %+v", report)
	}

	_, ts = newTestServer(t, Config{Source: filepath.Join(t.TempDir(), "gone.json")})
	if status, _ := get(t, ts.URL+PathHealth); status != http.StatusServiceUnavailable {
		t.Errorf("missing source health status = %d, want 503", status)
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + PathSocket
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg WSMessage) map[string]interface{} {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return resp
}

func TestServer_WebSocket(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	conn := dial(t, ts)

	if resp := roundTrip(t, conn, WSMessage{Type: "ping"}); resp["type"] != "pong" {
		t.Errorf("ping answered with %v", resp)
	}
	if s.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", s.Clients())
	}

	resp := roundTrip(t, conn, WSMessage{Type: "render"})
	if resp["type"] != "fragment" {
		t.Fatalf("render answered with %v", resp)
	}
	if payload, _ := resp["payload"].(string); !strings.HasPrefix(payload, "<details><summary>[6]</summary>") {
		t.Errorf("fragment payload = %q", payload)
	}

	resp = roundTrip(t, conn, WSMessage{Type: "bogus"})
	payload, _ := resp["payload"].(map[string]interface{})
	if resp["type"] != "error" || payload["code"] != "INVALID_INPUT" {
		t.Errorf("unknown type answered with %v", resp)
	}
}

func TestServer_Broadcast(t *testing.T) {
	path := writeSource(t, `{"lexeme": "a"}`)
	s, ts := newTestServer(t, Config{Source: path})

	first := dial(t, ts)
	second := dial(t, ts)
	for _, conn := range []*websocket.Conn{first, second} {
		roundTrip(t, conn, WSMessage{Type: "ping"})
	}

	if err := os.WriteFile(path, []byte(`{"lexeme": "bb"}`), 0644); err != nil {
		t.Fatal(err)
	}
	s.Broadcast()

	for i, conn := range []*websocket.Conn{first, second} {
		resp := read(t, conn)
		if resp["type"] != "fragment" || resp["payload"] != "&#39;bb&#39;" {
			t.Errorf("client %d received %v", i, resp)
		}
	}

	if err := os.WriteFile(path, []byte(`{"a": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	s.Broadcast()
	if resp := read(t, first); resp["type"] != "error" {
		t.Errorf("broken source broadcast %v", resp)
	}
}

func TestServer_FragmentCache(t *testing.T) {
	path := writeSource(t, `{"lexeme": "a"}`)
	s, ts := newTestServer(t, Config{Source: path})

	for i := 0; i < 3; i++ {
		if status, _ := get(t, ts.URL+PathFragment); status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
	}
	if hits, misses, _ := s.fragments.Stats(); hits != 2 || misses != 1 {
		t.Errorf("cache hits = %d misses = %d, want 2 and 1", hits, misses)
	}

	if err := os.WriteFile(path, []byte(`{"lexeme": "abc"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, body := get(t, ts.URL+PathFragment); body != "&#39;abc&#39;" {
		t.Errorf("fragment after change = %q", body)
	}
}

func TestServer_WriteErrorLogsBySeverity(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLevel  string
	}{
		{"invalid document", mdwerror.New("document is empty").WithCode(mdwerror.CodeInvalidInput), http.StatusBadRequest, "[WRN]"},
		{"render failure", mdwerror.New("write failed").WithCode(mdwerror.CodeRenderFailed), http.StatusInternalServerError, "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.FromConfig(logging.LoggerConfig{Name: "test", Level: "debug", Format: "text", Output: &buf})
			s := New(Config{}, logger)
			defer s.Close()

			rec := httptest.NewRecorder()
			s.writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			out := buf.String()
			if !strings.Contains(out, tt.wantLevel+" {test.server} Request failed") {
				t.Errorf("log does not contain %s entry:\n%s", tt.wantLevel, out)
			}
			if !strings.Contains(out, "error=\""+tt.err.Error()+"\"") {
				t.Errorf("log does not carry the error:\n%s", out)
			}
		})
	}
}
