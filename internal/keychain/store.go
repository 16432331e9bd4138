package keychain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"sync"

	"github.com/99designs/keyring"
	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// Opener opens the keyring backing one service name.
type Opener func(service string) (keyring.Keyring, error)

// Store is a secret store scoped by access group. It is safe for concurrent
// use; per-key write ordering is left to the keyring backend.
type Store struct {
	serviceName string
	open        Opener

	mu    sync.Mutex
	rings map[string]keyring.Keyring
}

// NewStore returns a Store whose keyrings are named after serviceName and
// opened lazily with open.
func NewStore(serviceName string, open Opener) *Store {
	return &Store{
		serviceName: serviceName,
		open:        open,
		rings:       make(map[string]keyring.Keyring),
	}
}

// ServiceFor returns the keyring service holding entries of accessGroup.
// A nil group maps to the bare service name, an explicit group (the empty
// one included) to "<service>.<escaped group>". The group is path-escaped,
// so it is always a single path segment and no two groups share a service.
func (s *Store) ServiceFor(accessGroup *string) string {
	if accessGroup == nil {
		return s.serviceName
	}
	return s.serviceName + "." + url.PathEscape(*accessGroup)
}

func (s *Store) ring(accessGroup *string) (keyring.Keyring, error) {
	service := s.ServiceFor(accessGroup)

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rings[service]; ok {
		return r, nil
	}
	r, err := s.open(service)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring %q: %w", service, err)
	}
	s.rings[service] = r
	return r, nil
}

// Write stores data under key in the keyring of accessGroup, replacing any
// previous value. The entry is marked synchronizable iff syncAcrossDevices.
func (s *Store) Write(ctx context.Context, key string, data []byte, accessGroup *string, syncAcrossDevices bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return common.ErrorInvalidKey
	}
	r, err := s.ring(accessGroup)
	if err != nil {
		return err
	}
	err = r.Set(keyring.Item{
		Key:                       key,
		Data:                      data,
		Label:                     s.serviceName,
		Description:               "stored user",
		KeychainNotSynchronizable: !syncAcrossDevices,
	})
	if err != nil {
		return fmt.Errorf("failed to write secret[%s]: %w", key, err)
	}
	return nil
}

// Read returns the bytes stored under key in the keyring of accessGroup,
// or common.ErrorNotFound.
func (s *Store) Read(ctx context.Context, key string, accessGroup *string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.ring(accessGroup)
	if err != nil {
		return nil, err
	}
	item, err := r.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read secret[%s]: %w", key, err)
	}
	return item.Data, nil
}

// Remove deletes key from the keyring of accessGroup. Removing an absent key
// is not an error.
func (s *Store) Remove(ctx context.Context, key string, accessGroup *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := s.ring(accessGroup)
	if err != nil {
		return err
	}
	err = r.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove secret[%s]: %w", key, err)
	}
	return nil
}

// Keys lists the keys stored in the keyring of accessGroup.
func (s *Store) Keys(ctx context.Context, accessGroup *string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.ring(accessGroup)
	if err != nil {
		return nil, err
	}
	keys, err := r.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}
	return keys, nil
}
