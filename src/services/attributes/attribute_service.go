package attributes

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
	"umsgraph/src/helper/datatype"
	"umsgraph/src/services/schema"
)

type AttributeService struct {
	nodeStore      domain.NodeStore
	attributeStore domain.AttributeStore
	registry       *schema.Registry
}

func NewAttributeService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	registry *schema.Registry,
) *AttributeService {
	return &AttributeService{
		nodeStore:      nodeStore,
		attributeStore: attributeStore,
		registry:       registry,
	}
}

// decorate preenche scope, visibilidade, tipo e descrição do atributo a partir
// da schema entry. Quando o schema não declara tipo, o tipo é inferido do
// próprio valor.
func (s *AttributeService) decorate(ctx context.Context, attr *entities.Attribute) error {
	entry, err := s.registry.Get(ctx, attr.Key)
	if err != nil {
		return err
	}

	inferred := datatype.Infer(attr.Value)
	if entry == nil {
		attr.DataType = &inferred
		return nil
	}

	attr.Scope = &entry.Scope
	attr.Hidden = &entry.Hidden
	attr.Description = entry.Description
	dt := entry.DataType
	if dt == entities.DataTypeUnknown {
		dt = inferred
	}
	attr.DataType = &dt
	return nil
}

func (s *AttributeService) ensureNode(ctx context.Context, nodeID int64) (*entities.Node, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load node: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("node %d: %w", nodeID, domain.ErrNodeNotFound)
	}
	return node, nil
}
