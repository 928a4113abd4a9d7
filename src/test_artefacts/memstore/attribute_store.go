package memstore

import (
	"context"
	"sort"
	"sync"

	"umsgraph/src/domain/entities"
)

type AttributeStore struct {
	mu     sync.Mutex
	nextID int64
	// nodeID -> key -> attribute
	rows map[int64]map[string]entities.Attribute
}

func NewAttributeStore() *AttributeStore {
	return &AttributeStore{rows: make(map[int64]map[string]entities.Attribute)}
}

func (s *AttributeStore) GetOwn(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr, ok := s.rows[nodeID][key]
	if !ok {
		return nil, nil
	}
	return &attr, nil
}

// ListOwn devolve em ordem de chave, como a query real.
func (s *AttributeStore) ListOwn(ctx context.Context, nodeID int64) ([]entities.Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := s.rows[nodeID]
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]entities.Attribute, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, byKey[key])
	}
	return attrs, nil
}

func (s *AttributeStore) ListByKey(ctx context.Context, key string) ([]entities.Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodeIDs := make([]int64, 0, len(s.rows))
	for nodeID := range s.rows {
		nodeIDs = append(nodeIDs, nodeID)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	var attrs []entities.Attribute
	for _, nodeID := range nodeIDs {
		if attr, ok := s.rows[nodeID][key]; ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs, nil
}

func (s *AttributeStore) Upsert(ctx context.Context, attr *entities.Attribute) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.upsertLocked(attr), nil
}

func (s *AttributeStore) upsertLocked(attr *entities.Attribute) bool {
	if s.rows[attr.NodeID] == nil {
		s.rows[attr.NodeID] = make(map[string]entities.Attribute)
	}

	existing, ok := s.rows[attr.NodeID][attr.Key]
	if ok {
		attr.ID = existing.ID
		attr.CreatedAt = existing.CreatedAt
		attr.UpdatedAt = now()
		s.rows[attr.NodeID][attr.Key] = *attr
		return false
	}

	s.nextID++
	attr.ID = s.nextID
	attr.CreatedAt = now()
	attr.UpdatedAt = attr.CreatedAt
	s.rows[attr.NodeID][attr.Key] = *attr
	return true
}

func (s *AttributeStore) BulkUpsert(ctx context.Context, nodeID int64, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		attr := entities.Attribute{NodeID: nodeID, Key: key, Value: value}
		s.upsertLocked(&attr)
	}
	return nil
}

func (s *AttributeStore) InsertMissing(ctx context.Context, nodeIDs []int64, defaults map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, nodeID := range nodeIDs {
		for key, value := range defaults {
			if _, ok := s.rows[nodeID][key]; ok {
				continue
			}
			attr := entities.Attribute{NodeID: nodeID, Key: key, Value: value}
			s.upsertLocked(&attr)
		}
	}
	return nil
}

func (s *AttributeStore) DeleteKeys(ctx context.Context, nodeIDs []int64, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, nodeID := range nodeIDs {
		for _, key := range keys {
			delete(s.rows[nodeID], key)
		}
	}
	return nil
}

func (s *AttributeStore) DeleteByNodeID(ctx context.Context, nodeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, nodeID)
	return nil
}
