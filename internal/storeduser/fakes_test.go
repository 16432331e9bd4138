package storeduser

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// memSecrets is a concurrency-safe SecretStore partitioned by access group.
type memSecrets struct {
	mu    sync.Mutex
	items map[string][]byte
	sync  map[string]bool

	writeErr  error
	readErr   error
	removeErr error
}

func newMemSecrets() *memSecrets {
	return &memSecrets{items: make(map[string][]byte), sync: make(map[string]bool)}
}

func slot(key string, group *string) string {
	if group == nil {
		return "-/" + key
	}
	return "+" + *group + "/" + key
}

func (s *memSecrets) Write(_ context.Context, key string, data []byte, group *string, syncAcross bool) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[slot(key, group)] = append([]byte(nil), data...)
	s.sync[slot(key, group)] = syncAcross
	return nil
}

func (s *memSecrets) Read(_ context.Context, key string, group *string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[slot(key, group)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *memSecrets) Remove(_ context.Context, key string, group *string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, slot(key, group))
	return nil
}

func (s *memSecrets) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// memPrefs is a concurrency-safe PreferenceStore without Move support.
type memPrefs struct {
	mu    sync.Mutex
	items map[string][]byte

	getErr    error
	setErr    error
	deleteErr error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{items: make(map[string][]byte)}
}

func (p *memPrefs) Get(_ context.Context, key string) ([]byte, error) {
	if p.getErr != nil {
		return nil, p.getErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.items[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte{}, v...), nil
}

func (p *memPrefs) Set(_ context.Context, key string, value []byte) error {
	if p.setErr != nil {
		return p.setErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[key] = append([]byte{}, value...)
	return nil
}

func (p *memPrefs) Delete(_ context.Context, key string) error {
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.items, key)
	return nil
}
