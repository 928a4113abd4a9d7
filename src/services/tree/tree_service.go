package tree

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

type TreeService struct {
	treeStore      domain.TreeStore
	attributeStore domain.AttributeStore
}

func NewTreeService(treeStore domain.TreeStore, attributeStore domain.AttributeStore) *TreeService {
	return &TreeService{
		treeStore:      treeStore,
		attributeStore: attributeStore,
	}
}

func (s *TreeService) Get(ctx context.Context, id int64) (*entities.TreeNode, error) {
	node, err := s.treeStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("TreeService.Get - failed to load node: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("TreeService.Get - node %d: %w", id, domain.ErrNodeNotFound)
	}
	return node, nil
}

// validateNode checa nome, tipo, pai e homônimos; excludeID ignora o próprio
// nó na checagem de nome, para updates.
func (s *TreeService) validateNode(ctx context.Context, node *entities.TreeNode, excludeID int64) error {
	if strings.TrimSpace(node.Name) == "" {
		return fmt.Errorf("blank name: %w", domain.ErrInvalidName)
	}
	if !entities.ValidTreeType(node.Type) {
		return fmt.Errorf("type %d: %w", node.Type, domain.ErrInvalidType)
	}

	if node.ParentID != 0 {
		parent, err := s.treeStore.GetByID(ctx, node.ParentID)
		if err != nil {
			return fmt.Errorf("failed to load parent: %w", err)
		}
		if parent == nil {
			return fmt.Errorf("parent %d: %w", node.ParentID, domain.ErrParentNotFound)
		}
	}

	count, err := s.treeStore.CountSiblingNamed(ctx, node.ParentID, node.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to count siblings: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("name %q under parent %d: %w", node.Name, node.ParentID, domain.ErrDuplicateName)
	}

	return nil
}

// ensureNoCycle sobe a cadeia de pais a partir de newParentID; encontrar o
// próprio nó no caminho significa que o update criaria um ciclo.
func (s *TreeService) ensureNoCycle(ctx context.Context, nodeID, newParentID int64) error {
	seen := make(map[int64]bool)
	currentID := newParentID
	for currentID != 0 {
		if currentID == nodeID {
			return fmt.Errorf("node %d: %w", nodeID, domain.ErrParentCycle)
		}
		if seen[currentID] {
			// Ciclo pré-existente acima do nó; não envolve o update.
			return nil
		}
		seen[currentID] = true

		parent, err := s.treeStore.GetByID(ctx, currentID)
		if err != nil {
			return fmt.Errorf("failed to load ancestor: %w", err)
		}
		if parent == nil {
			return nil
		}
		currentID = parent.ParentID
	}
	return nil
}

// collectSubtree devolve o subtree em níveis BFS, do nó para baixo.
func (s *TreeService) collectSubtree(ctx context.Context, id int64) ([][]int64, error) {
	levels := [][]int64{{id}}
	frontier := []int64{id}

	for len(frontier) > 0 {
		var next []int64
		for _, parentID := range frontier {
			children, err := s.treeStore.ListChildren(ctx, parentID)
			if err != nil {
				return nil, fmt.Errorf("failed to list children: %w", err)
			}
			for _, child := range children {
				next = append(next, child.ID)
			}
		}
		if len(next) > 0 {
			levels = append(levels, next)
		}
		frontier = next
	}

	return levels, nil
}

// referencedIDs cruza os IDs do subtree com os vínculos de template gravados
// nos atributos dos nós do grafo.
func (s *TreeService) referencedIDs(ctx context.Context, ids []int64) ([]int64, error) {
	attrs, err := s.attributeStore.ListByKey(ctx, domain.KeyTemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template bindings: %w", err)
	}

	bound := make(map[int64]bool, len(attrs))
	for i := range attrs {
		templateID, err := strconv.ParseInt(string(attrs[i].Value), 10, 64)
		if err != nil {
			continue
		}
		bound[templateID] = true
	}

	var referenced []int64
	for _, id := range ids {
		if bound[id] {
			referenced = append(referenced, id)
		}
	}
	return referenced, nil
}
