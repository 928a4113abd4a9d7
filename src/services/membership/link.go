package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// Link cria a aresta nó -> pai. Multi-parent é permitido; o pai pode ser
// qualquer nó existente com kind classificado. A aresta duplicada é rejeitada
// e o self-link também, já que nunca agrega valor na resolução.
func (s *MembershipService) Link(ctx context.Context, nodeID, parentID int64) error {
	if nodeID == parentID {
		return fmt.Errorf("MembershipService.Link - node %d: %w", nodeID, domain.ErrParentCycle)
	}

	node, err := s.loadNode(ctx, nodeID)
	if err != nil {
		return fmt.Errorf("MembershipService.Link - %w", err)
	}
	if node == nil {
		return fmt.Errorf("MembershipService.Link - node %d: %w", nodeID, domain.ErrNodeNotFound)
	}

	parent, err := s.loadNode(ctx, parentID)
	if err != nil {
		return fmt.Errorf("MembershipService.Link - %w", err)
	}
	if parent == nil {
		return fmt.Errorf("MembershipService.Link - parent %d: %w", parentID, domain.ErrParentNotFound)
	}
	if !parent.Kind.Valid() {
		return fmt.Errorf("MembershipService.Link - parent %d has kind %q: %w", parentID, parent.Kind, domain.ErrInvalidType)
	}

	exists, err := s.membershipStore.Exists(ctx, nodeID, parentID)
	if err != nil {
		return fmt.Errorf("MembershipService.Link - failed to check edge: %w", err)
	}
	if exists {
		return fmt.Errorf("MembershipService.Link - edge %d -> %d: %w", nodeID, parentID, domain.ErrEdgeExists)
	}

	edge := &entities.MembershipEdge{NodeID: nodeID, ParentID: parentID}
	if err := s.membershipStore.Insert(ctx, edge); err != nil {
		return fmt.Errorf("MembershipService.Link - failed to insert edge: %w", err)
	}
	return nil
}
