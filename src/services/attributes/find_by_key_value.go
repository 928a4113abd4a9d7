package attributes

import (
	"bytes"
	"context"
	"fmt"
)

// FindByKeyValue devolve os IDs dos nós cujo valor próprio da chave é
// byte-idêntico ao informado. Usado por probes de unicidade (username, email).
func (s *AttributeService) FindByKeyValue(ctx context.Context, key string, value []byte) ([]int64, error) {
	attrs, err := s.attributeStore.ListByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("AttributeService.FindByKeyValue - failed to list by key: %w", err)
	}

	var nodeIDs []int64
	for i := range attrs {
		if bytes.Equal(attrs[i].Value, value) {
			nodeIDs = append(nodeIDs, attrs[i].NodeID)
		}
	}
	return nodeIDs, nil
}
