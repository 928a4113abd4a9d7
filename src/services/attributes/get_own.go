package attributes

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// GetOwn devolve o valor próprio do nó para a chave, sem herança; nil quando
// o nó não tem a chave.
func (s *AttributeService) GetOwn(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error) {
	node, err := s.ensureNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("AttributeService.GetOwn - %w", err)
	}

	attr, err := s.attributeStore.GetOwn(ctx, nodeID, key)
	if err != nil {
		return nil, fmt.Errorf("AttributeService.GetOwn - failed to load attribute: %w", err)
	}
	if attr == nil {
		return nil, nil
	}

	if err := s.decorate(ctx, attr); err != nil {
		return nil, fmt.Errorf("AttributeService.GetOwn - failed to decorate attribute: %w", err)
	}
	attr.OwnerKind = node.Kind
	return attr, nil
}
