// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/store"
)

// Op is a single call observed by [RecordingStore].
type Op struct {
	Kind  string // "get", "set" or "remove"
	Key   string
	Value string
}

func (o Op) String() string {
	if o.Kind == "set" {
		return fmt.Sprintf("%s %s=%s", o.Kind, o.Key, o.Value)
	}
	return o.Kind + " " + o.Key
}

// RecordingStore is a [store.Store] backed by memory that records every call.
//
// Setting FailWrites makes Set and Remove return an error without touching the data.
type RecordingStore struct {
	*store.MemoryStore

	mu         sync.Mutex
	ops        []Op
	FailWrites bool
	FailReads  bool
}

// NewRecordingStore creates a [RecordingStore] seeded with entries.
func NewRecordingStore(seed map[string]string) *RecordingStore {
	return &RecordingStore{MemoryStore: store.NewMemoryStore(seed)}
}

func (r *RecordingStore) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *RecordingStore) Get(key string) (string, bool, error) {
	r.record(Op{Kind: "get", Key: key})
	if r.FailReads {
		return "", false, errors.New("read failed")
	}
	return r.MemoryStore.Get(key)
}

func (r *RecordingStore) Set(key, value string) error {
	r.record(Op{Kind: "set", Key: key, Value: value})
	if r.FailWrites {
		return errors.New("write failed")
	}
	return r.MemoryStore.Set(key, value)
}

func (r *RecordingStore) Remove(key string) error {
	r.record(Op{Kind: "remove", Key: key})
	if r.FailWrites {
		return errors.New("write failed")
	}
	return r.MemoryStore.Remove(key)
}

// Ops returns a copy of every recorded call.
func (r *RecordingStore) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Writes returns the recorded Set and Remove calls.
func (r *RecordingStore) Writes() []Op {
	var writes []Op
	for _, op := range r.Ops() {
		if op.Kind != "get" {
			writes = append(writes, op)
		}
	}
	return writes
}

// Reset forgets recorded calls.
func (r *RecordingStore) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// MockCatalog is a test double for services.Catalog
type MockCatalog struct {
	mu sync.Mutex

	Movies      []models.Movie
	DetailsByID map[int]*models.MovieDetails
	GenreList   []models.Genre
	Err         error

	Calls []string
}

// NewMockCatalog creates a [MockCatalog] holding movies, with details derived from each.
func NewMockCatalog(movies ...models.Movie) *MockCatalog {
	details := make(map[int]*models.MovieDetails, len(movies))
	for _, m := range movies {
		details[m.ID] = &models.MovieDetails{Movie: m, Status: "Released"}
	}
	return &MockCatalog{Movies: movies, DetailsByID: details}
}

func (m *MockCatalog) call(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

// CallCount returns how many calls have been made.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockCatalog) page(n int, movies []models.Movie) *models.Page[models.Movie] {
	if n < 1 {
		n = 1
	}
	return &models.Page[models.Movie]{Page: n, Results: movies, TotalPages: 1, TotalResults: len(movies)}
}

func (m *MockCatalog) Popular(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	m.call("popular %d", page)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.page(page, m.Movies), nil
}

func (m *MockCatalog) TopRated(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	m.call("top_rated %d", page)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.page(page, m.Movies), nil
}

func (m *MockCatalog) NowPlaying(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	m.call("now_playing %d", page)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.page(page, m.Movies), nil
}

func (m *MockCatalog) Search(ctx context.Context, query string, page int) (*models.Page[models.Movie], error) {
	m.call("search %q %d", query, page)
	if m.Err != nil {
		return nil, m.Err
	}
	var matches []models.Movie
	for _, movie := range m.Movies {
		if strings.Contains(strings.ToLower(movie.Title), strings.ToLower(query)) {
			matches = append(matches, movie)
		}
	}
	return m.page(page, matches), nil
}

func (m *MockCatalog) Details(ctx context.Context, id int) (*models.MovieDetails, error) {
	m.call("details %d", id)
	if m.Err != nil {
		return nil, m.Err
	}
	d, ok := m.DetailsByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %d", shared.ErrFetchFailed, shared.ErrMovieNotFound, id)
	}
	return d, nil
}

func (m *MockCatalog) Genres(ctx context.Context) ([]models.Genre, error) {
	m.call("genres")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.GenreList, nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
