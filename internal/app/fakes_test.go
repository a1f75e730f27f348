package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

type fakeWebsite struct {
	msg   string
	err   error
	calls int
}

func (f *fakeWebsite) LoginWebsite(ctx context.Context, creds domain.Credentials) (string, error) {
	f.calls++
	return f.msg, f.err
}

type fakeLoader struct {
	body  string
	err   error
	calls int
}

func (f *fakeLoader) LoginLoader(ctx context.Context, creds domain.Credentials) (string, error) {
	f.calls++
	return f.body, f.err
}

type memStore struct {
	mu      sync.Mutex
	creds   domain.Credentials
	ok      bool
	saveErr error
	saves   int
}

func (s *memStore) Load(ctx context.Context) (domain.Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.ok, nil
}

func (s *memStore) Save(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.creds, s.ok = creds, true
	return nil
}

// fakeFetcher sert des contenus en mémoire et écrit vraiment les fichiers.
type fakeFetcher struct {
	mu      sync.Mutex
	content map[string][]byte
	fail    map[string]error
	fetched []string
	modes   map[string]os.FileMode
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{content: map[string][]byte{}, fail: map[string]error{}, modes: map[string]os.FileMode{}}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[url]; err != nil {
		return nil, err
	}
	b, ok := f.content[url]
	if !ok {
		return nil, NewCodedError(CodeHTTPStatus, "GET "+url, errors.New("404 Not Found"))
	}
	return b, nil
}

func (f *fakeFetcher) Download(ctx context.Context, url, dst string, mode os.FileMode) (int64, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, filepath.Base(dst))
	f.modes[filepath.Base(dst)] = mode
	err := f.fail[url]
	b := f.content[url]
	f.mu.Unlock()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(dst, b, mode); err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

func (f *fakeFetcher) downloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

type fakeSpawner struct {
	path string
	args []string
	err  error
}

func (s *fakeSpawner) Spawn(path string, args ...string) (int, error) {
	s.path = path
	s.args = args
	if s.err != nil {
		return 0, s.err
	}
	return 4242, nil
}

func mustEvent(t interface{ Fatalf(string, ...any) }, topic string, v any) ports.Event {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return ports.Event{Topic: topic, Payload: b}
}
