package memstore

import (
	"context"
	"sync"

	"umsgraph/src/domain/entities"
)

type MembershipStore struct {
	mu     sync.Mutex
	nextID int64
	edges  []entities.MembershipEdge
}

func NewMembershipStore() *MembershipStore {
	return &MembershipStore{}
}

// ParentsOf preserva a ordem de inserção das arestas, igual ao ORDER BY id.
func (s *MembershipStore) ParentsOf(ctx context.Context, nodeID int64) ([]entities.MembershipEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entities.MembershipEdge
	for _, edge := range s.edges {
		if edge.NodeID == nodeID {
			result = append(result, edge)
		}
	}
	return result, nil
}

func (s *MembershipStore) ChildrenOf(ctx context.Context, parentID int64) ([]entities.MembershipEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entities.MembershipEdge
	for _, edge := range s.edges {
		if edge.ParentID == parentID {
			result = append(result, edge)
		}
	}
	return result, nil
}

func (s *MembershipStore) Exists(ctx context.Context, nodeID, parentID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, edge := range s.edges {
		if edge.NodeID == nodeID && edge.ParentID == parentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MembershipStore) Insert(ctx context.Context, edge *entities.MembershipEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	edge.ID = s.nextID
	edge.CreatedAt = now()
	s.edges = append(s.edges, *edge)
	return nil
}

func (s *MembershipStore) Delete(ctx context.Context, nodeID, parentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.edges[:0]
	for _, edge := range s.edges {
		if edge.NodeID == nodeID && edge.ParentID == parentID {
			continue
		}
		remaining = append(remaining, edge)
	}
	s.edges = remaining
	return nil
}
