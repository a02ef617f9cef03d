package session

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Snapshot is a point-in-time view of the session. Generation changes on
// every Establish or Clear, letting the gateway detect whether the session
// a request was sent under is still the current one.
type Snapshot struct {
	Authenticated bool
	Token         string
	User          model.User
	Generation    uint64
}

// Store is the single source of truth for who is logged in. It is the only
// shared mutable state in the client; it is mutated exclusively by
// Establish, Clear and the gateway's unauthorized-response path.
type Store struct {
	mu            sync.Mutex
	storage       Storage
	token         string
	user          model.User
	authenticated bool
	generation    uint64
}

// New creates an unauthenticated Store backed by the given storage.
// Call Restore before issuing any authenticated request.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore loads the persisted token and user record. Missing, corrupt or
// expired persisted state yields an unauthenticated session and wipes the
// persisted entries so the next start sees a clean slate.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.storage.Get(tokenKey)
	if err != nil {
		return s.wipeLocked(err)
	}
	raw, err := s.storage.Get(userKey)
	if err != nil {
		return s.wipeLocked(err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return s.wipeLocked(nil)
	}
	if user.ID == "" || tokenExpired(token) {
		return s.wipeLocked(nil)
	}

	s.token = token
	s.user = user
	s.authenticated = true
	return nil
}

// Establish records a freshly issued credential and user, persisting both.
// Every subsequent outgoing request carries the credential.
func (s *Store) Establish(token string, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(tokenKey, token); err != nil {
		return err
	}
	if err := s.storage.Set(userKey, string(raw)); err != nil {
		return err
	}
	s.token = token
	s.user = user
	s.authenticated = true
	s.generation++
	return nil
}

// Clear removes the persisted credential and marks the session
// unauthenticated. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Invalidate clears the session only if it still belongs to the given
// generation. It returns true for exactly one caller per established
// session, which is how the gateway guarantees at most one teardown when
// several in-flight requests come back unauthorized together.
func (s *Store) Invalidate(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.generation != generation {
		return false
	}
	_ = s.clearLocked()
	return true
}

// Current returns the session state synchronously. Never blocks on I/O.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Authenticated: s.authenticated,
		Token:         s.token,
		User:          s.user,
		Generation:    s.generation,
	}
}

func (s *Store) clearLocked() error {
	err := s.storage.Delete(tokenKey)
	if err2 := s.storage.Delete(userKey); err == nil {
		err = err2
	}
	s.token = ""
	s.user = model.User{}
	s.authenticated = false
	s.generation++
	return err
}

// wipeLocked resets in-memory state and removes any half-written persisted
// entries. A plain missing entry is not an error; anything else is.
func (s *Store) wipeLocked(cause error) error {
	_ = s.storage.Delete(tokenKey)
	_ = s.storage.Delete(userKey)
	s.token = ""
	s.user = model.User{}
	s.authenticated = false
	if cause == nil || errors.Is(cause, ErrNoEntry) {
		return nil
	}
	return cause
}

// tokenExpired reports whether the token is a JWT whose expiry has passed.
// Opaque non-JWT tokens and JWTs without an exp claim are kept as-is; the
// backend remains the authority and will answer 401 if it disagrees.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
