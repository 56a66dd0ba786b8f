package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialKey is the fixed name the bearer credential is stored under.
const credentialKey = "dashboard_token"

// ErrNoToken is returned when a login transition is attempted without a
// usable credential.
var ErrNoToken = errors.New("Login succeeded but no token returned by backend.")

// Claims is what the store can read out of a JWT credential without the
// signing secret. Zero value when the credential is not a JWT.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Store holds the current authentication credential. It has exactly two
// states: anonymous (empty credential) and authenticated (non-empty).
type Store struct {
	mu         sync.RWMutex
	storage    Storage
	credential string
	authError  string
}

// New creates an anonymous store backed by the given storage.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore rehydrates the credential persisted by an earlier run. A missing
// or empty stored value leaves the store anonymous.
func (s *Store) Restore(ctx context.Context) error {
	value, err := s.storage.Get(ctx, credentialKey)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.credential = value
	s.mu.Unlock()
	return nil
}

// SetCredential transitions the store to authenticated and persists the
// credential. An empty credential is rejected and the store stays anonymous.
func (s *Store) SetCredential(ctx context.Context, credential string) error {
	if credential == "" {
		s.SetAuthError(ErrNoToken.Error())
		return ErrNoToken
	}
	if err := s.storage.Set(ctx, credentialKey, credential); err != nil {
		return err
	}
	s.mu.Lock()
	s.credential = credential
	s.authError = ""
	s.mu.Unlock()
	return nil
}

// Logout transitions back to anonymous and removes the persisted credential.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.credential = ""
	s.authError = ""
	s.mu.Unlock()
	return s.storage.Remove(ctx, credentialKey)
}

// Credential returns the current bearer credential, empty when anonymous.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Authenticated reports whether a credential is held.
func (s *Store) Authenticated() bool {
	return s.Credential() != ""
}

// AuthHeader derives the authorization headers for outbound requests. It is
// recomputed from the current credential on every call, never cached.
func (s *Store) AuthHeader() map[string]string {
	cred := s.Credential()
	if cred == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + cred}
}

// SetAuthError records the outcome of a failed auth attempt.
func (s *Store) SetAuthError(msg string) {
	s.mu.Lock()
	s.authError = msg
	s.mu.Unlock()
}

// ClearAuthError drops any previous auth error before a new attempt.
func (s *Store) ClearAuthError() {
	s.SetAuthError("")
}

// AuthError returns the last auth error, empty when none.
func (s *Store) AuthError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authError
}

// Claims inspects the credential as a JWT without verifying its signature
// (the dashboard never holds the backend's signing secret). The second
// return is false when the credential is absent or not a JWT; the
// credential itself stays valid either way — it is opaque to us.
func (s *Store) Claims() (Claims, bool) {
	cred := s.Credential()
	if cred == "" {
		return Claims{}, false
	}

	token, _, err := jwt.NewParser().ParseUnverified(cred, jwt.MapClaims{})
	if err != nil {
		return Claims{}, false
	}

	var claims Claims
	if sub, err := token.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, true
}
