package resolver

import (
	"bytes"
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// EffectiveAttributes monta a visão consolidada do nó: atributos próprios
// primeiro e depois os herdados, em profundidade. Chave marcada com
// override_parent no schema suprime as ocorrências herdadas quando o nó tem
// valor próprio, e pares (chave, valor) byte-idênticos repetidos entram uma
// vez só — o que mata os duplicados de losango.
func (s *ResolverService) EffectiveAttributes(ctx context.Context, nodeID int64) ([]entities.Attribute, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.EffectiveAttributes - failed to load node: %w", err)
	}
	if node == nil {
		return nil, nil
	}

	t := s.newTraversal(node)
	order, err := t.collectOrder(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.EffectiveAttributes - %w", err)
	}

	ownKeys := make(map[string]bool)
	seen := make(map[string][][]byte)
	var result []entities.Attribute

	for _, currentID := range order {
		attrs, err := t.s.attributeStore.ListOwn(ctx, currentID)
		if err != nil {
			return nil, fmt.Errorf("ResolverService.EffectiveAttributes - failed to list attributes: %w", err)
		}

		for i := range attrs {
			attr := attrs[i]

			if currentID == nodeID {
				ownKeys[attr.Key] = true
			} else {
				entry, err := s.registry.Get(ctx, attr.Key)
				if err != nil {
					return nil, fmt.Errorf("ResolverService.EffectiveAttributes - %w", err)
				}
				if entry != nil && entry.OverrideParent && ownKeys[attr.Key] {
					continue
				}
			}

			if duplicateValue(seen[attr.Key], attr.Value) {
				continue
			}
			seen[attr.Key] = append(seen[attr.Key], attr.Value)

			if err := t.finish(ctx, &attr, currentID); err != nil {
				return nil, fmt.Errorf("ResolverService.EffectiveAttributes - %w", err)
			}
			result = append(result, attr)
		}
	}

	return result, nil
}

// collectOrder lista os nós alcançáveis em ordem de precedência: o próprio nó
// e depois os ancestrais em DFS, cada um no máximo uma vez.
func (t *traversal) collectOrder(ctx context.Context, currentID int64) ([]int64, error) {
	if t.visited[currentID] {
		return nil, nil
	}
	t.visited[currentID] = true

	order := []int64{currentID}

	edges, err := t.s.membershipStore.ParentsOf(ctx, currentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parents: %w", err)
	}
	for _, edge := range edges {
		ancestors, err := t.collectOrder(ctx, edge.ParentID)
		if err != nil {
			return nil, err
		}
		order = append(order, ancestors...)
	}

	return order, nil
}

func duplicateValue(values [][]byte, candidate []byte) bool {
	for _, value := range values {
		if bytes.Equal(value, candidate) {
			return true
		}
	}
	return false
}
