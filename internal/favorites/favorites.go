// Package favorites holds the user's favorite movies, persisted to a [store.Store].
//
// The collection is unique by movie id and keeps insertion order. Every effective mutation
// writes the whole collection as a JSON array under [store.KeyFavorites]. The stored value is
// always read before the first write, so a store that has not been loaded yet is never
// overwritten with an empty list.
package favorites

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/state"
	"github.com/desertthunder/marquee/internal/store"
)

// Store is the process-wide favorites collection.
type Store struct {
	backend store.Store
	logger  *log.Logger

	// publishMu orders mutations with their delivery. It is taken before mu.
	publishMu sync.Mutex
	mu        sync.RWMutex
	movies    []models.Movie
	index     map[int]int
	loaded    bool

	observers state.Broadcaster[[]models.Movie]
}

// New creates an unloaded favorites store over backend.
func New(backend store.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		backend: backend,
		logger:  logger,
		index:   make(map[int]int),
	}
}

// Load reads the persisted collection. It runs at most once; later calls are no-ops.
//
// Corrupt stored data is logged and treated as an empty collection. Load never writes.
func (s *Store) Load() error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	err := s.loadLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err == nil {
		s.observers.Publish(snapshot)
	}
	return err
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	raw, found, err := s.backend.Get(store.KeyFavorites)
	if err != nil {
		return fmt.Errorf("failed to read favorites: %w", err)
	}
	s.loaded = true
	if !found {
		return nil
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		s.logger.Error("stored favorites are corrupt, starting empty", "error", err)
		return nil
	}

	for _, m := range movies {
		if _, dup := s.index[m.ID]; dup {
			continue
		}
		s.index[m.ID] = len(s.movies)
		s.movies = append(s.movies, m)
	}
	s.logger.Debug("favorites loaded", "count", len(s.movies))
	return nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// IsFavorite reports whether a movie with id is in the collection.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Add appends movie unless a favorite with the same id exists. The existing entry is kept as is.
func (s *Store) Add(movie models.Movie) error {
	_, err := s.mutate(func() bool { return s.addLocked(movie) })
	return err
}

// Remove deletes the favorite with id. Removing an absent id is a no-op.
func (s *Store) Remove(id int) error {
	_, err := s.mutate(func() bool { return s.removeLocked(id) })
	return err
}

// Toggle removes movie if present, otherwise adds it. It reports whether movie is a favorite afterwards.
func (s *Store) Toggle(movie models.Movie) (bool, error) {
	var added bool
	_, err := s.mutate(func() bool {
		if s.removeLocked(movie.ID) {
			return true
		}
		added = s.addLocked(movie)
		return added
	})
	return added, err
}

// Clear empties the collection.
func (s *Store) Clear() error {
	_, err := s.mutate(func() bool {
		s.movies = nil
		s.index = make(map[int]int)
		return true
	})
	return err
}

// Subscribe registers fn to receive a copy of the collection after load and after every change.
//
// Copies arrive in mutation order. fn may read the store but must not mutate it.
func (s *Store) Subscribe(fn func([]models.Movie)) *state.Subscription {
	return s.observers.Subscribe(fn)
}

// mutate loads if needed, applies change, and persists when change reports a difference.
//
// A failed write leaves the in-memory change in place and returns an error wrapping [shared.ErrPersist].
func (s *Store) mutate(change func() bool) (bool, error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	if !change() {
		s.mu.Unlock()
		return false, nil
	}

	err := s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.observers.Publish(snapshot)
	return true, err
}

func (s *Store) addLocked(movie models.Movie) bool {
	if _, ok := s.index[movie.ID]; ok {
		return false
	}
	s.index[movie.ID] = len(s.movies)
	s.movies = append(s.movies, movie)
	return true
}

func (s *Store) removeLocked(id int) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.movies = append(s.movies[:pos:pos], s.movies[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.movies); i++ {
		s.index[s.movies[i].ID] = i
	}
	return true
}

func (s *Store) persistLocked() error {
	movies := s.movies
	if movies == nil {
		movies = []models.Movie{}
	}
	raw, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersist, err)
	}
	if err := s.backend.Set(store.KeyFavorites, string(raw)); err != nil {
		s.logger.Warn("failed to persist favorites", "error", err)
		return fmt.Errorf("%w: %w", shared.ErrPersist, err)
	}
	return nil
}

func (s *Store) snapshotLocked() []models.Movie {
	out := make([]models.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}
