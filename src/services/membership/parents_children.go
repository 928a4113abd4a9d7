package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

// ParentsOf devolve os nós pai na ordem de inserção das arestas.
func (s *MembershipService) ParentsOf(ctx context.Context, nodeID int64) ([]entities.Node, error) {
	node, err := s.loadNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.ParentsOf - %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("MembershipService.ParentsOf - node %d: %w", nodeID, domain.ErrNodeNotFound)
	}

	edges, err := s.membershipStore.ParentsOf(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.ParentsOf - failed to list edges: %w", err)
	}

	ids := make([]int64, len(edges))
	for i, edge := range edges {
		ids[i] = edge.ParentID
	}
	return s.loadEdgeNodes(ctx, ids)
}

func (s *MembershipService) ChildrenOf(ctx context.Context, parentID int64) ([]entities.Node, error) {
	node, err := s.loadNode(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.ChildrenOf - %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("MembershipService.ChildrenOf - node %d: %w", parentID, domain.ErrNodeNotFound)
	}

	edges, err := s.membershipStore.ChildrenOf(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.ChildrenOf - failed to list edges: %w", err)
	}

	ids := make([]int64, len(edges))
	for i, edge := range edges {
		ids[i] = edge.NodeID
	}
	return s.loadEdgeNodes(ctx, ids)
}
