package attributes

import (
	"context"
	"fmt"
)

// BulkUpsert grava o mapa inteiro de atributos do nó como uma unidade: toda
// chave é validada antes e nenhuma linha é gravada se qualquer uma falhar.
func (s *AttributeService) BulkUpsert(ctx context.Context, nodeID int64, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}

	if _, err := s.ensureNode(ctx, nodeID); err != nil {
		return fmt.Errorf("AttributeService.BulkUpsert - %w", err)
	}

	for key, value := range values {
		if err := s.registry.Validate(ctx, key, len(value)); err != nil {
			return fmt.Errorf("AttributeService.BulkUpsert - %w", err)
		}
	}

	if err := s.attributeStore.BulkUpsert(ctx, nodeID, values); err != nil {
		return fmt.Errorf("AttributeService.BulkUpsert - failed to bulk upsert: %w", err)
	}
	return nil
}
