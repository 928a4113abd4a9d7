package attributes

import (
	"context"
	"fmt"
	"strconv"

	"umsgraph/src/domain"
)

// SyncTemplateDefaults propaga uma mudança de template para todos os nós
// ligados a ele: chaves default novas entram só onde ainda não existem (valor
// próprio do nó nunca é sobrescrito) e chaves removidas do template são
// apagadas de todos.
func (s *AttributeService) SyncTemplateDefaults(ctx context.Context, templateID int64, defaults map[string][]byte, removedKeys []string) error {
	nodeIDs, err := s.FindByKeyValue(ctx, domain.KeyTemplateID, []byte(strconv.FormatInt(templateID, 10)))
	if err != nil {
		return fmt.Errorf("AttributeService.SyncTemplateDefaults - %w", err)
	}
	if len(nodeIDs) == 0 {
		return nil
	}

	if len(defaults) > 0 {
		if err := s.attributeStore.InsertMissing(ctx, nodeIDs, defaults); err != nil {
			return fmt.Errorf("AttributeService.SyncTemplateDefaults - failed to insert defaults: %w", err)
		}
	}

	if len(removedKeys) > 0 {
		if err := s.attributeStore.DeleteKeys(ctx, nodeIDs, removedKeys); err != nil {
			return fmt.Errorf("AttributeService.SyncTemplateDefaults - failed to delete removed keys: %w", err)
		}
	}

	return nil
}
