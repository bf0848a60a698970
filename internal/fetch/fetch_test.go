package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"krimiwiki/internal/fetch"
)

type stubExecutor struct {
	calls [][]string
	body  string
	err   error
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	s.calls = append(s.calls, append([]string{binary}, args...))
	if s.err != nil {
		return s.err
	}
	// args: -s -f -o <file> <url>
	return os.WriteFile(args[3], []byte(s.body), 0o644)
}

func TestCommandFetcherWritesDestination(t *testing.T) {
	exec := &stubExecutor{body: "<html></html>"}
	f, err := fetch.NewCommandFetcher("curl", time.Minute, fetch.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommandFetcher: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "tatort-fans", "1970.html")

	if err := f.Fetch(context.Background(), "https://tatort-fans.de/category/tatort-1970-1979/1970/", dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := [][]string{{"curl", "-s", "-f", "-o", dest + ".part", "https://tatort-fans.de/category/tatort-1970-1979/1970/"}}
	if diff := cmp.Diff(want, exec.calls); diff != "" {
		t.Fatalf("command mismatch (-want +got):\n%s", diff)
	}
	got, err := os.ReadFile(dest)
	if err != nil || string(got) != "<html></html>" {
		t.Fatalf("unexpected destination content %q (%v)", got, err)
	}
}

func TestCommandFetcherFailureLeavesNoFile(t *testing.T) {
	f, err := fetch.NewCommandFetcher("curl", 0, fetch.WithExecutor(&stubExecutor{err: errors.New("boom")}))
	if err != nil {
		t.Fatalf("NewCommandFetcher: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "tatort.html")
	if err := f.Fetch(context.Background(), "https://example.org", dest); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no destination file, stat err = %v", err)
	}
}

func TestNewCommandFetcherRequiresBinary(t *testing.T) {
	if _, err := fetch.NewCommandFetcher(" ", 0); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "krimiwiki-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("page"))
	}))
	t.Cleanup(server.Close)

	f := fetch.NewHTTPFetcher("krimiwiki-test", time.Second, nil)
	dest := filepath.Join(t.TempDir(), "out.html")
	if err := f.Fetch(context.Background(), server.URL+"/index.html", dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got, _ := os.ReadFile(dest); string(got) != "page" {
		t.Fatalf("unexpected content %q", got)
	}
	if err := f.Fetch(context.Background(), server.URL+"/missing", dest+"2"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestPacerSleepsBetweenCalls(t *testing.T) {
	var slept []time.Duration
	p := fetch.NewPacer(5500*time.Millisecond, 5*time.Second,
		fetch.WithRandom(func() float64 { return 0.5 }),
		fetch.WithSleep(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}))

	for range 3 {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	want := []time.Duration{8 * time.Second, 8 * time.Second}
	if diff := cmp.Diff(want, slept); diff != "" {
		t.Fatalf("sleep mismatch (-want +got):\n%s", diff)
	}
}

func TestPacerHonoursCancellation(t *testing.T) {
	p := fetch.NewPacer(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait should not block: %v", err)
	}
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunAllStopsAtFirstError(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit 22")}
	f, _ := fetch.NewCommandFetcher("curl", 0, fetch.WithExecutor(exec))
	dir := t.TempDir()
	jobs := []fetch.Job{
		{URL: "https://a.example", Dest: filepath.Join(dir, "a")},
		{URL: "https://b.example", Dest: filepath.Join(dir, "b")},
	}
	if err := fetch.RunAll(context.Background(), f, nil, jobs); err == nil {
		t.Fatal("expected error")
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected batch to stop after first failure, got %d calls", len(exec.calls))
	}
}
