package tree

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// Create valida e insere o nó; ParentID 0 cria uma raiz.
func (s *TreeService) Create(ctx context.Context, node *entities.TreeNode) error {
	if err := s.validateNode(ctx, node, 0); err != nil {
		return fmt.Errorf("TreeService.Create - %w", err)
	}
	if err := s.treeStore.Insert(ctx, node); err != nil {
		return fmt.Errorf("TreeService.Create - failed to insert node: %w", err)
	}
	return nil
}
