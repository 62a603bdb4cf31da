package launcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunPoolEmptyPoolIsNoop(t *testing.T) {
	if err := RunPool(context.Background(), nil, nil, nil); err != nil {
		t.Fatalf("RunPool(empty): %v", err)
	}
}

func TestRunPoolExactlyOnceExecution(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	const n = 200
	tasks := make([]Task, n)
	for i := 0; i < n; i++ {
		tasks[i] = Task{
			URL:         srv.URL + "/" + string(rune('a'+i%26)),
			Destination: filepath.Join(dir, "file", string(rune('a'+i%26)), string(rune('0'+i/26))),
			Label:       "item",
		}
	}

	sink := &countingSink{}
	if err := RunPool(context.Background(), tasks, sink, srv.Client()); err != nil {
		t.Fatalf("RunPool: %v", err)
	}
	if sink.count() != n {
		t.Errorf("advances = %d; want %d", sink.count(), n)
	}
}

type countingSink struct {
	mu sync.Mutex
	n  int
}

func (s *countingSink) AdvanceOne() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
}
func (s *countingSink) SetCurrentLabel(string) {}
func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func TestRunPoolDuplicateDestinationLeavesVerifiedFile(t *testing.T) {
	const body = "shared-asset"
	digest := sha1Hex([]byte(body))
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "shared.bin")
	tasks := []Task{
		{URL: srv.URL, ExpectedDigest: &digest, Destination: dest, Label: "a"},
		{URL: srv.URL, ExpectedDigest: &digest, Destination: dest, Label: "b"},
	}

	if err := RunPool(context.Background(), tasks, nil, srv.Client()); err != nil {
		t.Fatalf("RunPool: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != body {
		t.Errorf("destination contents = %q; want %q", data, body)
	}
}

func TestRunPoolPropagatesFatalErrorWithoutAbortingInFlightWork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	origBackoff := fetchBackoff
	fetchBackoff = 0
	defer func() { fetchBackoff = origBackoff }()

	dir := t.TempDir()
	tasks := []Task{
		{URL: srv.URL + "/bad", Destination: filepath.Join(dir, "bad.bin")},
		{URL: srv.URL + "/good", Destination: filepath.Join(dir, "good.bin")},
	}

	err := RunPool(context.Background(), tasks, nil, srv.Client())
	if err == nil {
		t.Fatal("expected RunPool to surface the fatal fetch error")
	}
	var exhausted *FetchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v (%T); want *FetchExhaustedError", err, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "good.bin")); err != nil {
		t.Errorf("expected the good task to complete despite the failing one: %v", err)
	}
}
