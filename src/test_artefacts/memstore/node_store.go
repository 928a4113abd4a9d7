package memstore

import (
	"context"
	"sync"

	"umsgraph/src/domain/entities"
)

type NodeStore struct {
	mu     sync.Mutex
	nextID int64
	nodes  map[int64]entities.Node
}

func NewNodeStore() *NodeStore {
	return &NodeStore{nodes: make(map[int64]entities.Node)}
}

func (s *NodeStore) GetByID(ctx context.Context, id int64) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	return &node, nil
}

func (s *NodeStore) GetByUniqueID(ctx context.Context, uniqueID string) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, node := range s.nodes {
		if node.UniqueID == uniqueID {
			found := node
			return &found, nil
		}
	}
	return nil, nil
}

func (s *NodeStore) Insert(ctx context.Context, node *entities.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	node.ID = s.nextID
	node.CreatedAt = now()
	node.UpdatedAt = node.CreatedAt
	s.nodes[node.ID] = *node
	return nil
}

func (s *NodeStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.nodes, id)
	return nil
}
