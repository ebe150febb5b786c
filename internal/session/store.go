// Package session holds the logged-in user's identity and persists it between
// console invocations.
package session

import (
	"context"
	"sync"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/storage"
)

// loggedInMarker is the value of storage.KeyIsLoggedIn for a live session.
const loggedInMarker = "true"

// AuthAPI is the subset of the platform client the store calls.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*platform.LoginUser, error)
	Logout(ctx context.Context) error
	GetLoginUser(ctx context.Context) (*platform.LoginUser, error)
}

// Store is the session store. The in-memory snapshot is authoritative; the
// persisted copy only seeds it on restore.
type Store struct {
	api     AuthAPI
	storage storage.Store
	log     *log.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates a logged-out store.
func NewStore(api AuthAPI, st storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		api:     api,
		storage: st,
		log:     logger.WithComponent("session"),
	}
}

// Snapshot returns the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// IsLoggedIn reports whether the in-memory session is active.
func (s *Store) IsLoggedIn() bool {
	return s.Snapshot().LoggedIn
}

func (s *Store) set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

func snapshotFrom(u *platform.LoginUser, fallbackUsername string) Snapshot {
	username := u.Username
	if username == "" {
		username = fallbackUsername
	}
	return Snapshot{
		UserID:    u.ID,
		Username:  username,
		Nickname:  u.Nickname,
		Role:      ParseRole(u.UserRole),
		CompanyID: u.CompanyID,
		Token:     u.Token,
		LoggedIn:  true,
	}
}

// Login authenticates and persists the session. It returns false with a nil
// error when the backend answered without a user payload.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	u, err := s.api.Login(ctx, username, password)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	snap := snapshotFrom(u, username)
	if err := s.persist(snap); err != nil {
		s.Clear()
		return false, err
	}
	s.set(snap)

	s.log.Info("logged in", "user_id", snap.UserID, "role", string(snap.Role))
	return true, nil
}

// Logout ends the session. The server call is best effort; local state is
// always cleared.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.WithError(err).Warn("logout request failed")
	}
	s.Clear()
}

// Clear drops the in-memory session and both persisted keys.
func (s *Store) Clear() {
	s.set(Snapshot{})

	for _, key := range []string{storage.KeyUserInfo, storage.KeyIsLoggedIn} {
		if err := s.storage.Remove(key); err != nil {
			s.log.WithError(err).Warn("failed to remove persisted session key", "key", key)
		}
	}
}

// HasPersistedLogin reports whether the logged-in marker is stored.
func (s *Store) HasPersistedLogin() bool {
	v, ok, err := s.storage.Get(storage.KeyIsLoggedIn)
	if err != nil {
		s.log.WithError(err).Debug("failed to read login marker")
		return false
	}
	return ok && v == loggedInMarker
}

// RestoreLoginState loads the persisted session when memory holds none. A
// corrupt snapshot clears everything. It never fails.
func (s *Store) RestoreLoginState() {
	if s.IsLoggedIn() || !s.HasPersistedLogin() {
		return
	}

	raw, ok, err := s.storage.Get(storage.KeyUserInfo)
	if err != nil {
		s.log.WithError(err).Warn("failed to read persisted session")
		return
	}
	if !ok {
		return
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		s.log.WithError(errors.NewStateCorruptError(storage.KeyUserInfo, err)).Warn("failed to restore login state")
		s.Clear()
		return
	}
	s.set(snap)
}

// FetchCurrentUser refreshes the session from the backend. Any failure clears
// the session. The bearer token is kept when the response carries none.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	u, err := s.api.GetLoginUser(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to fetch current user")
		s.Clear()
		return err
	}
	if u == nil {
		return nil
	}

	snap := snapshotFrom(u, "")
	if snap.Token == "" {
		snap.Token = s.Snapshot().Token
	}
	if snap.Token == "" {
		snap.Token = s.persistedToken()
	}
	if err := s.persist(snap); err != nil {
		return err
	}
	s.set(snap)
	return nil
}

// Token returns the bearer token of the persisted session, so a request made
// by any process sharing the state directory carries the latest credential.
func (s *Store) Token() string {
	if tok := s.persistedToken(); tok != "" {
		return tok
	}
	return s.Snapshot().Token
}

func (s *Store) persistedToken() string {
	raw, ok, err := s.storage.Get(storage.KeyUserInfo)
	if err != nil || !ok {
		return ""
	}
	snap, err := decodeSnapshot(raw)
	if err != nil {
		s.log.Debug("ignoring unreadable persisted session", "error", err.Error())
		return ""
	}
	return snap.Token
}

func (s *Store) persist(snap Snapshot) error {
	raw, err := snap.encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to encode session", err)
	}
	if err := s.storage.Set(storage.KeyUserInfo, raw); err != nil {
		return err
	}
	return s.storage.Set(storage.KeyIsLoggedIn, loggedInMarker)
}

var _ platform.TokenSource = (*Store)(nil)
