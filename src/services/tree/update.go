package tree

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// Update valida e regrava o nó. Mudança de pai passa pela caminhada
// anti-ciclo na cadeia de ancestrais do novo pai.
func (s *TreeService) Update(ctx context.Context, node *entities.TreeNode) error {
	current, err := s.treeStore.GetByID(ctx, node.ID)
	if err != nil {
		return fmt.Errorf("TreeService.Update - failed to load node: %w", err)
	}
	if current == nil {
		return fmt.Errorf("TreeService.Update - node %d: %w", node.ID, domain.ErrNodeNotFound)
	}

	if err := s.validateNode(ctx, node, node.ID); err != nil {
		return fmt.Errorf("TreeService.Update - %w", err)
	}

	if node.ParentID != current.ParentID && node.ParentID != 0 {
		if err := s.ensureNoCycle(ctx, node.ID, node.ParentID); err != nil {
			return fmt.Errorf("TreeService.Update - %w", err)
		}
	}

	if err := s.treeStore.Update(ctx, node); err != nil {
		return fmt.Errorf("TreeService.Update - failed to update node: %w", err)
	}
	return nil
}
