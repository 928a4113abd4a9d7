package tree

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
)

// Remove apaga o nó. Sem cascade, nó com filhos é rejeitado; com cascade o
// subtree inteiro cai, apagado de baixo para cima em lotes por nível. Em
// ambos os casos, qualquer nó do conjunto ainda vinculado por atributo de
// template bloqueia a remoção inteira.
func (s *TreeService) Remove(ctx context.Context, id int64, cascade bool) error {
	node, err := s.treeStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("TreeService.Remove - failed to load node: %w", err)
	}
	if node == nil {
		return fmt.Errorf("TreeService.Remove - node %d: %w", id, domain.ErrNodeNotFound)
	}

	if !cascade {
		count, err := s.treeStore.CountChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("TreeService.Remove - failed to count children: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("TreeService.Remove - node %d has %d children: %w", id, count, domain.ErrChildrenExist)
		}
	}

	levels, err := s.collectSubtree(ctx, id)
	if err != nil {
		return fmt.Errorf("TreeService.Remove - %w", err)
	}

	var all []int64
	for _, level := range levels {
		all = append(all, level...)
	}
	referenced, err := s.referencedIDs(ctx, all)
	if err != nil {
		return fmt.Errorf("TreeService.Remove - %w", err)
	}
	if len(referenced) > 0 {
		return fmt.Errorf("TreeService.Remove - nodes %v still bound by template attributes: %w", referenced, domain.ErrReferenced)
	}

	for i := len(levels) - 1; i >= 0; i-- {
		if err := s.treeStore.DeleteByIDs(ctx, levels[i]); err != nil {
			return fmt.Errorf("TreeService.Remove - failed to delete level: %w", err)
		}
	}
	return nil
}
