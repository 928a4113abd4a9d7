package memstore

import (
	"context"
	"sort"
	"sync"

	"umsgraph/src/domain/entities"
)

type SchemaStore struct {
	mu      sync.Mutex
	nextID  int64
	entries map[string]entities.SchemaEntry

	// FailNext faz a próxima leitura falhar com o erro dado; usado para testar
	// que o snapshot anterior sobrevive a um reload quebrado.
	FailNext error
}

func NewSchemaStore() *SchemaStore {
	return &SchemaStore{entries: make(map[string]entities.SchemaEntry)}
}

func (s *SchemaStore) Put(entry entities.SchemaEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == 0 {
		s.nextID++
		entry.ID = s.nextID
	}
	s.entries[entry.Key] = entry
}

func (s *SchemaStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

func (s *SchemaStore) GetByKey(ctx context.Context, key string) (*entities.SchemaEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *SchemaStore) ListAll(ctx context.Context) ([]entities.SchemaEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]entities.SchemaEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, s.entries[key])
	}
	return entries, nil
}

func (s *SchemaStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}
