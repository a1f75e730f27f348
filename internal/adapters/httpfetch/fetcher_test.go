package httpfetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
)

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1718000000"))
	}))
	defer ts.Close()

	b, err := New(0).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(b) != "1718000000" {
		t.Fatalf("unexpected body %q", b)
	}
}

func TestFetch_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := New(0).Fetch(context.Background(), ts.URL)
	if app.ErrorCode(err) != app.CodeHTTPStatus {
		t.Fatalf("expected http_status, got %v", err)
	}
}

func TestFetch_OversizedBodyIsRejected(t *testing.T) {
	body := bytes.Repeat([]byte("9"), maxMarkerBytes+1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	b, err := New(0).Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatalf("expected error, got %d bytes", len(b))
	}
	if app.ErrorCode(err) != app.CodeNetwork {
		t.Fatalf("expected network_error, got %v", err)
	}
}

func TestFetch_BodyAtLimitIsKept(t *testing.T) {
	body := bytes.Repeat([]byte("9"), maxMarkerBytes)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	b, err := New(0).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(b) != maxMarkerBytes {
		t.Fatalf("expected %d bytes, got %d", maxMarkerBytes, len(b))
	}
}

func TestDownload_ReplacesDestination(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("new swf content"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	dst := filepath.Join(dir, "pb2_re34_alt.swf")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := New(0).Download(context.Background(), ts.URL, dst, 0o755)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if n != int64(len("new swf content")) {
		t.Fatalf("unexpected size %d", n)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new swf content" {
		t.Fatalf("unexpected content %q", got)
	}
	if runtime.GOOS != "windows" {
		info, _ := os.Stat(dst)
		if info.Mode().Perm() != 0o755 {
			t.Fatalf("unexpected mode %v", info.Mode().Perm())
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestDownload_FailureKeepsExistingFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	dst := filepath.Join(t.TempDir(), "last_update.v")
	_ = os.WriteFile(dst, []byte("old"), 0o644)

	if _, err := New(0).Download(context.Background(), ts.URL, dst, 0o644); !app.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Fatalf("existing file must be untouched, got %q", got)
	}
}

func TestDownload_MissingDirectoryIsIOError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer ts.Close()

	dst := filepath.Join(t.TempDir(), "missing", "flashplayer")
	if _, err := New(0).Download(context.Background(), ts.URL, dst, 0o755); app.ErrorCode(err) != app.CodeIO {
		t.Fatalf("expected io_error, got %v", err)
	}
}
