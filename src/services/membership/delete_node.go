package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
)

// DeleteNode remove o nó, seus atributos e as arestas que o tocam. Nó que
// ainda tem filhos no grafo não pode ser removido.
func (s *MembershipService) DeleteNode(ctx context.Context, nodeID int64) error {
	node, err := s.loadNode(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.DeleteNode - %w", err)
	}
	if node == nil {
		return fmt.Errorf("MembershipService.DeleteNode - node %d: %w", nodeID, domain.ErrNodeNotFound)
	}

	children, err := s.membershipStore.ChildrenOf(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.DeleteNode - failed to list children: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("MembershipService.DeleteNode - node %d has %d children: %w", nodeID, len(children), domain.ErrChildrenExist)
	}

	parents, err := s.membershipStore.ParentsOf(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.DeleteNode - failed to list parents: %w", err)
	}
	for _, edge := range parents {
		if err := s.membershipStore.Delete(ctx, nodeID, edge.ParentID); err != nil {
			return fmt.Errorf("MembershipService.DeleteNode - failed to delete edge: %w", err)
		}
	}

	if err := s.attributeStore.DeleteByNodeID(ctx, nodeID); err != nil {
		return fmt.Errorf("MembershipService.DeleteNode - failed to delete attributes: %w", err)
	}
	if err := s.nodeStore.Delete(ctx, nodeID); err != nil {
		return fmt.Errorf("MembershipService.DeleteNode - failed to delete node: %w", err)
	}
	return nil
}
