package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// ReplaceParents troca o conjunto de pais de uma categoria: remove as arestas
// atuais cujo pai tem o kind informado e liga os novos pais, que precisam
// todos ser desse mesmo kind. Arestas para pais de outros kinds ficam
// intactas.
func (s *MembershipService) ReplaceParents(ctx context.Context, nodeID int64, parentIDs []int64, category entities.NodeKind) error {
	if !category.Valid() {
		return fmt.Errorf("MembershipService.ReplaceParents - category %q: %w", category, domain.ErrInvalidType)
	}

	node, err := s.loadNode(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.ReplaceParents - %w", err)
	}
	if node == nil {
		return fmt.Errorf("MembershipService.ReplaceParents - node %d: %w", nodeID, domain.ErrNodeNotFound)
	}

	// Valida os novos pais antes de qualquer remoção.
	newParents := make([]*entities.Node, len(parentIDs))
	for i, parentID := range parentIDs {
		parent, err := s.loadNode(ctx, parentID)
		if err != nil {
			return fmt.Errorf("MembershipService.ReplaceParents - %w", err)
		}
		if parent == nil {
			return fmt.Errorf("MembershipService.ReplaceParents - parent %d: %w", parentID, domain.ErrParentNotFound)
		}
		if parent.Kind != category {
			return fmt.Errorf("MembershipService.ReplaceParents - parent %d has kind %q, want %q: %w",
				parentID, parent.Kind, category, domain.ErrInvalidType)
		}
		newParents[i] = parent
	}

	edges, err := s.membershipStore.ParentsOf(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.ReplaceParents - failed to list edges: %w", err)
	}
	for _, edge := range edges {
		parent, err := s.loadNode(ctx, edge.ParentID)
		if err != nil {
			return fmt.Errorf("MembershipService.ReplaceParents - %w", err)
		}
		if parent == nil || parent.Kind != category {
			continue
		}
		if err := s.membershipStore.Delete(ctx, nodeID, edge.ParentID); err != nil {
			return fmt.Errorf("MembershipService.ReplaceParents - failed to delete edge: %w", err)
		}
	}

	for _, parent := range newParents {
		exists, err := s.membershipStore.Exists(ctx, nodeID, parent.ID)
		if err != nil {
			return fmt.Errorf("MembershipService.ReplaceParents - failed to check edge: %w", err)
		}
		if exists {
			continue
		}
		edge := &entities.MembershipEdge{NodeID: nodeID, ParentID: parent.ID}
		if err := s.membershipStore.Insert(ctx, edge); err != nil {
			return fmt.Errorf("MembershipService.ReplaceParents - failed to insert edge: %w", err)
		}
	}

	return nil
}
