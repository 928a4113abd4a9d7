package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

type MembershipService struct {
	nodeStore       domain.NodeStore
	attributeStore  domain.AttributeStore
	membershipStore domain.MembershipStore
}

func NewMembershipService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	membershipStore domain.MembershipStore,
) *MembershipService {
	return &MembershipService{
		nodeStore:       nodeStore,
		attributeStore:  attributeStore,
		membershipStore: membershipStore,
	}
}

func (s *MembershipService) loadNode(ctx context.Context, nodeID int64) (*entities.Node, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load node: %w", err)
	}
	return node, nil
}

// loadEdgeNodes materializa a ponta oposta de cada aresta, preservando a
// ordem das arestas. Arestas órfãs (nó já removido) são ignoradas.
func (s *MembershipService) loadEdgeNodes(ctx context.Context, ids []int64) ([]entities.Node, error) {
	nodes := make([]entities.Node, 0, len(ids))
	for _, id := range ids {
		node, err := s.loadNode(ctx, id)
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, *node)
		}
	}
	return nodes, nil
}
