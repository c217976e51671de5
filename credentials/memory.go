package credentials

import "sync"

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(access, renewal string) error {
	if access == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.creds = Credentials{Access: access, Renewal: renewal}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Access() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Access, s.creds.Access != ""
}

func (s *MemoryStore) Renewal() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Renewal, s.creds.Renewal != ""
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()
	return nil
}
