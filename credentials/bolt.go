package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketCredentials = []byte("credentials")

// Persistence keys inside the credentials bucket.
const (
	AccessTokenKey  = "access_token"
	RenewalTokenKey = "refresh_token"
)

// BoltStore persists credentials in a BoltDB file so that a session survives
// process restarts. Reads are served from memory; writes go through to disk
// before the in-memory copy is updated.
type BoltStore struct {
	db *bolt.DB

	mu    sync.RWMutex
	creds Credentials
}

// OpenBoltStore opens (or creates) the credential database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials db: %w", err)
	}

	s := &BoltStore{db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketCredentials)
		if err != nil {
			return err
		}
		s.creds.Access = string(b.Get([]byte(AccessTokenKey)))
		s.creds.Renewal = string(b.Get([]byte(RenewalTokenKey)))
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return s, nil
}

func (s *BoltStore) Save(access, renewal string) error {
	if access == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCredentials)
		if err := b.Put([]byte(AccessTokenKey), []byte(access)); err != nil {
			return err
		}
		if renewal == "" {
			return b.Delete([]byte(RenewalTokenKey))
		}
		return b.Put([]byte(RenewalTokenKey), []byte(renewal))
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	s.creds = Credentials{Access: access, Renewal: renewal}
	return nil
}

func (s *BoltStore) Access() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Access, s.creds.Access != ""
}

func (s *BoltStore) Renewal() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Renewal, s.creds.Renewal != ""
}

func (s *BoltStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCredentials)
		if err := b.Delete([]byte(AccessTokenKey)); err != nil {
			return err
		}
		return b.Delete([]byte(RenewalTokenKey))
	})
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	s.creds = Credentials{}
	return nil
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
