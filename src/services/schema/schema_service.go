package schema

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// Registry mantém um snapshot imutável das schema entries em memória. Leituras
// vão direto no ponteiro atômico; Refresh e o read-through trocam o snapshot
// inteiro, nunca mutam o mapa publicado.
type Registry struct {
	schemaStore domain.SchemaStore

	snapshot atomic.Pointer[map[string]entities.SchemaEntry]
	writeMu  sync.Mutex
}

func NewRegistry(schemaStore domain.SchemaStore) *Registry {
	r := &Registry{schemaStore: schemaStore}
	empty := map[string]entities.SchemaEntry{}
	r.snapshot.Store(&empty)
	return r
}

// Get procura a chave no snapshot e, em caso de miss, tenta o store uma vez,
// publicando um snapshot novo com a entrada encontrada.
func (r *Registry) Get(ctx context.Context, key string) (*entities.SchemaEntry, error) {
	current := *r.snapshot.Load()
	if entry, ok := current[key]; ok {
		return &entry, nil
	}

	entry, err := r.schemaStore.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("Registry.Get - failed to load schema key: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	// Copy-on-write: o mapa publicado nunca é alterado depois do Store.
	current = *r.snapshot.Load()
	next := make(map[string]entities.SchemaEntry, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[entry.Key] = *entry
	r.snapshot.Store(&next)

	return entry, nil
}

func (r *Registry) IsAllowed(ctx context.Context, key string) (bool, error) {
	entry, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

func (r *Registry) AllKeys() []string {
	current := *r.snapshot.Load()
	keys := make([]string, 0, len(current))
	for key := range current {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
