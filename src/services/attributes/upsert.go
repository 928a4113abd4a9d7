package attributes

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// Upsert grava (nó, chave) -> valor depois de validar contra o schema.
// Retorna true quando o atributo foi criado, false quando sobrescrito.
func (s *AttributeService) Upsert(ctx context.Context, nodeID int64, key string, value []byte) (bool, error) {
	if _, err := s.ensureNode(ctx, nodeID); err != nil {
		return false, fmt.Errorf("AttributeService.Upsert - %w", err)
	}

	if err := s.registry.Validate(ctx, key, len(value)); err != nil {
		return false, fmt.Errorf("AttributeService.Upsert - %w", err)
	}

	attr := &entities.Attribute{NodeID: nodeID, Key: key, Value: value}
	created, err := s.attributeStore.Upsert(ctx, attr)
	if err != nil {
		return false, fmt.Errorf("AttributeService.Upsert - failed to upsert attribute: %w", err)
	}
	return created, nil
}
