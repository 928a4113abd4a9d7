package schema

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
)

// Validate aplica as regras da schema entry sobre uma escrita: chave precisa
// existir no schema e o valor respeitar o max_size, quando houver.
func (r *Registry) Validate(ctx context.Context, key string, size int) error {
	entry, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("key %q: %w", key, domain.ErrUnknownKey)
	}
	if entry.MaxSize != nil && int64(size) > *entry.MaxSize {
		return fmt.Errorf("key %q (%d bytes, max %d): %w", key, size, *entry.MaxSize, domain.ErrSizeExceeded)
	}
	return nil
}
