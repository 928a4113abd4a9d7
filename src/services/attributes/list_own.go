package attributes

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// ListOwn devolve os atributos próprios do nó, decorados com a schema entry.
// hidden filtra pela visibilidade declarada no schema: nil devolve tudo,
// atributos sem schema entry contam como visíveis.
func (s *AttributeService) ListOwn(ctx context.Context, nodeID int64, hidden *bool) ([]entities.Attribute, error) {
	node, err := s.ensureNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("AttributeService.ListOwn - %w", err)
	}

	attrs, err := s.attributeStore.ListOwn(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("AttributeService.ListOwn - failed to list attributes: %w", err)
	}

	result := make([]entities.Attribute, 0, len(attrs))
	for i := range attrs {
		attr := attrs[i]
		if err := s.decorate(ctx, &attr); err != nil {
			return nil, fmt.Errorf("AttributeService.ListOwn - failed to decorate attribute: %w", err)
		}
		attr.OwnerKind = node.Kind

		if hidden != nil {
			attrHidden := attr.Hidden != nil && *attr.Hidden
			if attrHidden != *hidden {
				continue
			}
		}
		result = append(result, attr)
	}

	return result, nil
}
