// Package session holds the bearer credentials for one client session.
// The store lives for the lifetime of the process, mirroring browser-tab
// scoped storage: nothing is persisted across restarts and nothing is
// shared between processes.
package session

import "sync"

// Storage keys for the two credentials the client keeps.
const (
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
)

// Store is an in-memory key-value store for session credentials.
// It is safe for concurrent use and must be constructed with NewStore.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Remove deletes key from the store. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// AccessToken returns the stored access token, if any.
func (s *Store) AccessToken() (string, bool) {
	return s.Get(KeyAccessToken)
}

// RefreshToken returns the stored refresh token, if any.
func (s *Store) RefreshToken() (string, bool) {
	return s.Get(KeyRefreshToken)
}

// SetAccessToken replaces the stored access token.
func (s *Store) SetAccessToken(token string) {
	s.Set(KeyAccessToken, token)
}

// SetRefreshToken replaces the stored refresh token.
func (s *Store) SetRefreshToken(token string) {
	s.Set(KeyRefreshToken, token)
}

// SetTokens stores a full credential pair atomically.
func (s *Store) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyAccessToken] = access
	s.values[KeyRefreshToken] = refresh
}

// Clear removes both credentials.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, KeyAccessToken)
	delete(s.values, KeyRefreshToken)
}
