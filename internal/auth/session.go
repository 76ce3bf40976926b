package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/state"
	"github.com/desertthunder/marquee/internal/store"
)

// Phase is the lifecycle position of a [Session].
type Phase int

const (
	Initializing Phase = iota
	Authenticated
	Anonymous
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of the session.
//
// IsAuthenticated is true iff User and Token are both set and the token was valid when last checked.
// Loading is true only before [Session.Load] completes.
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	Loading         bool
}

// Phase derives the lifecycle phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return Initializing
	case s.IsAuthenticated:
		return Authenticated
	default:
		return Anonymous
	}
}

// Session is the process-wide authenticated-user context.
//
// Construct one at startup, call [Session.Load] once, and hand the pointer to every consumer.
type Session struct {
	store  store.Store
	codec  *TokenCodec
	logger *log.Logger

	// publishMu orders transitions with their delivery. It is taken before mu.
	publishMu sync.Mutex
	mu        sync.RWMutex
	state     State
	loaded    bool

	observers state.Broadcaster[State]
}

// NewSession creates a session in the initializing phase.
func NewSession(s store.Store, codec *TokenCodec, logger *log.Logger) *Session {
	if codec == nil {
		codec = NewTokenCodec(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		store:  s,
		codec:  codec,
		logger: logger,
		state:  State{Loading: true},
	}
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every transition.
//
// Snapshots arrive in transition order. fn may read [Session.State] but must not start a transition.
func (s *Session) Subscribe(fn func(State)) *state.Subscription {
	return s.observers.Subscribe(fn)
}

// Load reads the persisted token and user once and resolves the session.
//
// Stored data that does not yield a valid session is erased. Read failures and corrupt user data
// are logged and resolve to anonymous. Only a failure to erase stale entries is returned.
// Calling Load again after it has resolved is a no-op.
func (s *Session) Load() error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}

	next, stale := s.readStored()
	var err error
	if stale {
		err = s.erase()
	}
	s.state = next
	s.loaded = true
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.logger.Debug("session loaded", "phase", snapshot.Phase())
	s.observers.Publish(snapshot)
	return err
}

// readStored returns the resolved state and whether anything stored must be erased.
func (s *Session) readStored() (State, bool) {
	anonymous := State{}

	token, hasToken, err := s.store.Get(store.KeyAuthToken)
	if err != nil {
		s.logger.Warn("failed to read stored token", "error", err)
		return anonymous, false
	}
	raw, hasUser, err := s.store.Get(store.KeyUserData)
	if err != nil {
		s.logger.Warn("failed to read stored user", "error", err)
		return anonymous, false
	}

	if !hasToken && !hasUser {
		return anonymous, false
	}
	if !hasToken || !hasUser {
		s.logger.Info("discarding incomplete stored session")
		return anonymous, true
	}

	if err := s.codec.Check(token); err != nil {
		s.logger.Info("discarding stored session", "reason", err)
		return anonymous, true
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Error("stored user data is corrupt", "error", err)
		return anonymous, true
	}
	if user.ID == "" {
		s.logger.Error("stored user data has no id")
		return anonymous, true
	}

	return State{User: &user, Token: token, IsAuthenticated: true}, false
}

// Login sets the session to authenticated with user and token and persists both.
//
// The token is trusted as issued; it is not validated here. The in-memory state changes even
// when persisting fails, in which case an error wrapping [shared.ErrPersist] is returned.
func (s *Session) Login(user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersist, err)
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state = State{User: &user, Token: token, IsAuthenticated: true}
	s.loaded = true
	snapshot := s.state.clone()

	var errs []error
	if err := s.store.Set(store.KeyAuthToken, token); err != nil {
		errs = append(errs, err)
	}
	if err := s.store.Set(store.KeyUserData, string(raw)); err != nil {
		errs = append(errs, err)
	}
	s.mu.Unlock()

	s.logger.Info("logged in", "user", user.Email)
	s.observers.Publish(snapshot)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", shared.ErrPersist, errors.Join(errs...))
	}
	return nil
}

// Logout clears the session and removes both persisted entries. Calling it when already
// anonymous is safe.
func (s *Session) Logout() error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state = State{}
	s.loaded = true
	err := s.erase()
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.logger.Info("logged out")
	s.observers.Publish(snapshot)
	return err
}

// erase removes both session keys. Callers hold s.mu.
func (s *Session) erase() error {
	var errs []error
	if err := s.store.Remove(store.KeyAuthToken); err != nil {
		errs = append(errs, err)
	}
	if err := s.store.Remove(store.KeyUserData); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", shared.ErrPersist, errors.Join(errs...))
	}
	return nil
}

// RequireUser returns the signed-in user or [shared.ErrNotAuthenticated].
func (s *Session) RequireUser() (*models.User, error) {
	st := s.State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return st.User, nil
}

func (st State) clone() State {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
