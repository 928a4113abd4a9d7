package membership

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"

	"github.com/google/uuid"
)

// CreateNode registra um nó novo com um unique_id recém-gerado e grava o mapa
// inicial de atributos de uma vez.
func (s *MembershipService) CreateNode(ctx context.Context, kind entities.NodeKind, starter map[string][]byte) (*entities.Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("MembershipService.CreateNode - kind %q: %w", kind, domain.ErrInvalidType)
	}

	node := &entities.Node{
		Kind:     kind,
		UniqueID: uuid.NewString(),
	}
	if err := s.nodeStore.Insert(ctx, node); err != nil {
		return nil, fmt.Errorf("MembershipService.CreateNode - failed to insert node: %w", err)
	}

	if len(starter) > 0 {
		if err := s.attributeStore.BulkUpsert(ctx, node.ID, starter); err != nil {
			return nil, fmt.Errorf("MembershipService.CreateNode - failed to write starter attributes: %w", err)
		}
	}

	return node, nil
}

func (s *MembershipService) GetNode(ctx context.Context, nodeID int64) (*entities.Node, error) {
	node, err := s.loadNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.GetNode - %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("MembershipService.GetNode - node %d: %w", nodeID, domain.ErrNodeNotFound)
	}
	return node, nil
}

func (s *MembershipService) GetNodeByUniqueID(ctx context.Context, uniqueID string) (*entities.Node, error) {
	node, err := s.nodeStore.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, fmt.Errorf("MembershipService.GetNodeByUniqueID - failed to load node: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("MembershipService.GetNodeByUniqueID - node %q: %w", uniqueID, domain.ErrNodeNotFound)
	}
	return node, nil
}
