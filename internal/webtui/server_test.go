package webtui

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNewServer_RequiresAddr(t *testing.T) {
	if _, err := NewServer(ServerConfig{Addr: "  "}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}

func TestHandler_PagesAndAssets(t *testing.T) {
	srv, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", MapRef: "Trip <plan>", Dir: "/tmp/store"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/terminal" {
		t.Fatalf("root: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terminal", nil))
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "/static/app.js") {
		t.Fatalf("terminal: %d\n%s", rec.Code, body)
	}
	if !strings.Contains(body, "Trip &lt;plan&gt;") {
		t.Fatalf("map name should be escaped:\n%s", body)
	}

	for _, p := range []string{"/static/app.js", "/static/app.css"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
			t.Fatalf("%s: %d", p, rec.Code)
		}
	}
}

func TestSessionArgs(t *testing.T) {
	s := &Server{cfg: ServerConfig{Dir: "/data", MapRef: "trip"}}
	if got, want := s.sessionArgs(), []string{"--dir", "/data", "--map", "trip", "edit"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	s = &Server{}
	if got := s.sessionArgs(); !reflect.DeepEqual(got, []string{"edit"}) {
		t.Fatalf("got %q", got)
	}
}

type fakeTerm struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	resizes [][2]int
	wrote   chan struct{}
}

func (f *fakeTerm) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.buf.Write(p)
	f.wrote <- struct{}{}
	return n, err
}

func (f *fakeTerm) Resize(cols, rows int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes = append(f.resizes, [2]int{cols, rows})
	return nil
}

// wsPair returns a client conn whose server side is handed to serve.
func wsPair(t *testing.T, serve func(conn *websocket.Conn)) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		serve(conn)
	}))
	t.Cleanup(ts.Close)
	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPumpWSToPTY_ForwardsKeysAndResizes(t *testing.T) {
	term := &fakeTerm{wrote: make(chan struct{}, 4)}
	done := make(chan error, 1)
	client := wsPair(t, func(conn *websocket.Conn) {
		done <- pumpWSToPTY(context.Background(), conn, term)
	})

	if err := client.WriteMessage(websocket.TextMessage, []byte(`{"type":"resize","cols":100,"rows":30}`)); err != nil {
		t.Fatalf("write resize: %v", err)
	}
	if err := client.WriteMessage(websocket.BinaryMessage, []byte("jj")); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	select {
	case <-term.wrote:
	case <-time.After(5 * time.Second):
		t.Fatalf("keys were not forwarded")
	}
	_ = client.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("pump did not stop on close")
	}

	term.mu.Lock()
	defer term.mu.Unlock()
	if term.buf.String() != "jj" {
		t.Fatalf("forwarded %q", term.buf.String())
	}
	if len(term.resizes) != 1 || term.resizes[0] != [2]int{100, 30} {
		t.Fatalf("resizes %v", term.resizes)
	}
}

func TestPumpPTYToWS_StreamsOutput(t *testing.T) {
	done := make(chan error, 1)
	client := wsPair(t, func(conn *websocket.Conn) {
		done <- pumpPTYToWS(context.Background(), io.NopCloser(strings.NewReader("editor screen")), conn)
	})

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt != websocket.BinaryMessage || string(data) != "editor screen" {
		t.Fatalf("got %d %q", mt, data)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("pump: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("pump did not finish at EOF")
	}
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{name: "no origin header", host: "127.0.0.1:3334", origin: "", want: true},
		{name: "same host and port", host: "127.0.0.1:3334", origin: "http://127.0.0.1:3334", want: true},
		{name: "different port", host: "127.0.0.1:3334", origin: "http://127.0.0.1:8080", want: false},
		{name: "host suffix is not enough", host: "example.com", origin: "http://evil-example.com", want: false},
		{name: "unparsable origin", host: "127.0.0.1:3334", origin: "http://[::1", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := sameOrigin(r); got != tt.want {
				t.Fatalf("sameOrigin(%q on %q) = %v, want %v", tt.origin, tt.host, got, tt.want)
			}
		})
	}
}
