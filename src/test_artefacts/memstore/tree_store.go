package memstore

import (
	"context"
	"sort"
	"sync"

	"umsgraph/src/domain/entities"
)

type TreeStore struct {
	mu     sync.Mutex
	nextID int64
	nodes  map[int64]entities.TreeNode
}

func NewTreeStore() *TreeStore {
	return &TreeStore{nodes: make(map[int64]entities.TreeNode)}
}

func (s *TreeStore) GetByID(ctx context.Context, id int64) (*entities.TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	return &node, nil
}

func (s *TreeStore) ListChildren(ctx context.Context, parentID int64) ([]entities.TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var children []entities.TreeNode
	for _, node := range s.nodes {
		if node.ParentID == parentID {
			children = append(children, node)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

// List ordena por (parent_id, id), igual à query real.
func (s *TreeStore) List(ctx context.Context, typeFilter *int) ([]entities.TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entities.TreeNode
	for _, node := range s.nodes {
		if typeFilter != nil && node.Type != *typeFilter {
			continue
		}
		result = append(result, node)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ParentID != result[j].ParentID {
			return result[i].ParentID < result[j].ParentID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *TreeStore) CountChildren(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, node := range s.nodes {
		if node.ParentID == id {
			count++
		}
	}
	return count, nil
}

func (s *TreeStore) CountSiblingNamed(ctx context.Context, parentID int64, name string, excludeID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, node := range s.nodes {
		if node.ParentID == parentID && node.Name == name && node.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (s *TreeStore) Insert(ctx context.Context, node *entities.TreeNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	node.ID = s.nextID
	node.CreatedAt = now()
	node.UpdatedAt = node.CreatedAt
	s.nodes[node.ID] = *node
	return nil
}

func (s *TreeStore) Update(ctx context.Context, node *entities.TreeNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.nodes[node.ID]
	if ok {
		node.CreatedAt = existing.CreatedAt
	}
	node.UpdatedAt = now()
	s.nodes[node.ID] = *node
	return nil
}

func (s *TreeStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.nodes, id)
	}
	return nil
}
