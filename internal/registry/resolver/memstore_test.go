package resolver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sorenhq/namevault/internal/registry/domain"
)

// memStore is an in-memory test double for domain.Store. failWith, when
// set, makes every operation report a storage fault. block, when set,
// makes CreateOrGet wait on it before touching the map.
type memStore struct {
	mu       sync.Mutex
	entries  map[string]uuid.UUID
	failWith error
	block    chan struct{}
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]uuid.UUID)}
}

var _ domain.Store = (*memStore)(nil)

func (s *memStore) CreateOrGet(_ context.Context, name string, rejectIfExists bool) (uuid.UUID, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return uuid.UUID{}, s.failWith
	}
	if existing, ok := s.entries[name]; ok {
		if rejectIfExists {
			return uuid.UUID{}, &domain.AlreadyExistsError{Name: name}
		}
		return existing, nil
	}
	uid := uuid.New()
	s.entries[name] = uid
	return uid, nil
}

func (s *memStore) Get(_ context.Context, name string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return uuid.UUID{}, false, s.failWith
	}
	uid, ok := s.entries[name]
	return uid, ok, nil
}

func (s *memStore) Delete(_ context.Context, name string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return uuid.UUID{}, false, s.failWith
	}
	uid, ok := s.entries[name]
	if ok {
		delete(s.entries, name)
	}
	return uid, ok, nil
}

func (s *memStore) List(_ context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	entries := make([]domain.Entry, 0, len(s.entries))
	for name, uid := range s.entries {
		entries = append(entries, domain.Entry{Name: name, UID: uid})
	}
	return entries, nil
}

func (s *memStore) Insert(_ context.Context, name string, uid uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.entries[name] = uid
	return nil
}

func (s *memStore) Close() error {
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
