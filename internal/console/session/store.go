package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/socconsole/internal/common"
	"github.com/dmitrijs2005/socconsole/internal/console/storage"
	"github.com/dmitrijs2005/socconsole/internal/logging"
)

// State is an immutable snapshot of the session.
type State struct {
	Token string
	User  *Profile
}

func (s State) Authenticated() bool {
	return s.Token != ""
}

type listener struct {
	id int
	fn func(State)
}

type Store struct {
	repo storage.Repository
	log  logging.Logger
	now  func() time.Time

	mu          sync.RWMutex
	token       string
	user        *Profile
	loaded      bool
	epoch       uint64
	nextID      int
	listeners   []listener
	logoutHooks []func()
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log, now: time.Now}
}

// Restore loads the persisted session. It never touches the network. A
// token alone is enough to be authenticated; an unreadable profile leaves
// User nil. The store is marked loaded even when storage fails, so the
// route guard is never left waiting.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.markLoaded()
		return fmt.Errorf("failed to restore session token: %w", err)
	}

	var user *Profile
	if len(token) > 0 {
		raw, err := s.repo.Get(ctx, common.UserStorageKey)
		switch {
		case err != nil:
			s.log.Warn(ctx, "stored profile unreadable", "error", err)
		case len(raw) > 0:
			if err := json.Unmarshal(raw, &user); err != nil {
				s.log.Warn(ctx, "stored profile is not valid JSON", "error", err)
				user = nil
			}
		}

		if exp, ok := TokenExpiry(string(token)); ok && exp.Before(s.now()) {
			s.log.Warn(ctx, "restored token appears expired", "exp", exp)
		}
	}

	s.mu.Lock()
	s.loaded = true
	s.token = string(token)
	s.user = user
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug(ctx, "session restored", "authenticated", state.Authenticated())
	s.notify(state)
	return nil
}

// Login is LoginSince at the current epoch.
func (s *Store) Login(ctx context.Context, token string, fields ProfileFields) bool {
	return s.LoginSince(ctx, s.Epoch(), token, fields)
}

// LoginSince persists token and the normalized profile and marks the client
// authenticated. It refuses (returns false) an empty token, a login whose
// epoch is older than the last logout, and storage failures. It never
// panics or returns an error: callers only need the outcome.
func (s *Store) LoginSince(ctx context.Context, epoch uint64, token string, fields ProfileFields) bool {
	if token == "" {
		s.log.Warn(ctx, "login rejected", "error", common.ErrEmptyToken)
		return false
	}

	profile := Normalize(fields)
	payload, err := json.Marshal(profile)
	if err != nil {
		s.log.Error(ctx, "failed to encode profile", "error", err)
		return false
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.log.Warn(ctx, "discarding login that started before logout")
		return false
	}

	err = s.repo.InTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		if err := repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserStorageKey, payload)
	})
	if err != nil {
		s.mu.Unlock()
		s.log.Error(ctx, "failed to persist session", "error", err)
		return false
	}

	s.token = token
	s.user = &profile
	s.loaded = true
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user", profile.DisplayName())
	s.notify(state)
	return true
}

// Logout clears the in-memory session, removes both persisted entries, runs
// the OnLogout hooks (cached server data) and then notifies subscribers.
// In-memory state is cleared even when storage fails; the storage error is
// returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.token = ""
	s.user = nil
	err := s.repo.InTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		if err := repo.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UserStorageKey)
	})
	hooks := append([]func(){}, s.logoutHooks...)
	s.mu.Unlock()

	for _, h := range hooks {
		h()
	}
	s.notify(State{})

	if err != nil {
		s.log.Error(ctx, "failed to remove persisted session", "error", err)
		return fmt.Errorf("failed to remove persisted session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// OnLogout registers fn to run on every logout, after the session is
// cleared and before subscribers hear about it.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutHooks = append(s.logoutHooks, fn)
}

// Subscribe calls fn with the new state after every restore, login and
// logout. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() *Profile {
	return s.Snapshot().User
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Loaded reports whether Restore (or a login) has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Epoch is the number of logouts so far.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Store) markLoaded() {
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
}

func (s *Store) snapshotLocked() State {
	st := State{Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Store) notify(state State) {
	s.mu.RLock()
	ls := append([]listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range ls {
		l.fn(state)
	}
}
