package server

import (
	"bytes"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/lists/tasklist"
)

// syncBuffer guards a buffer written by the server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestStore(t *testing.T) *tasklist.Store {
	t.Helper()
	backend, err := tasklist.NewFileBackend(filepath.Join(t.TempDir(), "tasks"), tasklist.FileOptions{})
	if err != nil {
		t.Fatalf("create backend: %v", err)
	}
	return tasklist.New(backend, tasklist.Options{})
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestHandlerServesListPages(t *testing.T) {
	logs := &syncBuffer{}
	server, err := New(Options{Store: newTestStore(t), Logger: log.New(logs, "", 0)})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/todo1", nil)
	response := httptest.NewRecorder()
	server.Handler().ServeHTTP(response, request)

	if response.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Code)
	}
	if !strings.Contains(response.Body.String(), "Todo List 1") {
		t.Fatalf("expected list page, got %s", response.Body.String())
	}
	if !strings.Contains(logs.String(), `"GET http://example.com/todo1`) {
		t.Fatalf("expected request log line, got %q", logs.String())
	}
}

func TestRequestPanicReturnsInternalError(t *testing.T) {
	logs := &syncBuffer{}
	server, err := New(Options{Store: newTestStore(t), Logger: log.New(logs, "", 0)})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	request := httptest.NewRequest(http.MethodGet, "/todo1", nil)
	response := httptest.NewRecorder()
	server.handler(panicking).ServeHTTP(response, request)

	if response.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", response.Code)
	}
	if !strings.Contains(response.Body.String(), "internal server error") {
		t.Fatalf("expected internal error body, got %q", response.Body.String())
	}
	output := logs.String()
	if !strings.Contains(output, "panic handling request GET /todo1: boom") {
		t.Fatalf("expected panic to be logged, got %q", output)
	}
	if !strings.Contains(output, "goroutine") {
		t.Fatalf("expected panic stack trace, got %q", output)
	}
}

func TestServeShutsDownOnInterrupt(t *testing.T) {
	server, err := New(Options{Store: newTestStore(t), Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	interrupts := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- server.serve(listener, interrupts)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	interrupts <- os.Interrupt
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeReportsListenErrors(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	server, err := New(Options{Store: newTestStore(t), Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := server.Serve(listener.Addr().String()); err == nil {
		t.Fatal("expected error for an address in use")
	}
}
