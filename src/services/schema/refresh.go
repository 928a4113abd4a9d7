package schema

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// Refresh reconstrói o snapshot a partir do store e troca o ponteiro. Em caso
// de erro o snapshot anterior continua valendo; leitores nunca veem um estado
// parcial.
func (r *Registry) Refresh(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	entries, err := r.schemaStore.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("Registry.Refresh - failed to list schema keys: %w", err)
	}

	next := make(map[string]entities.SchemaEntry, len(entries))
	for _, entry := range entries {
		next[entry.Key] = entry
	}
	r.snapshot.Store(&next)

	return nil
}
