package resolver

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// ResolveAll coleta toda ocorrência da chave ao longo do grafo: o valor
// próprio do nó vem primeiro e depois os dos ancestrais, em profundidade na
// ordem das arestas. Cada nó contribui no máximo uma vez, mesmo alcançável
// por mais de um caminho.
func (s *ResolverService) ResolveAll(ctx context.Context, nodeID int64, key string) ([]entities.Attribute, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.ResolveAll - failed to load node: %w", err)
	}
	if node == nil {
		return nil, nil
	}

	t := s.newTraversal(node)
	var result []entities.Attribute
	if err := t.collectAll(ctx, nodeID, key, &result); err != nil {
		return nil, fmt.Errorf("ResolverService.ResolveAll - %w", err)
	}
	return result, nil
}

func (t *traversal) collectAll(ctx context.Context, currentID int64, key string, out *[]entities.Attribute) error {
	if t.visited[currentID] {
		return nil
	}
	t.visited[currentID] = true

	attr, err := t.s.attributeStore.GetOwn(ctx, currentID, key)
	if err != nil {
		return fmt.Errorf("failed to load attribute: %w", err)
	}
	if attr != nil {
		if err := t.finish(ctx, attr, currentID); err != nil {
			return err
		}
		*out = append(*out, *attr)
	}

	edges, err := t.s.membershipStore.ParentsOf(ctx, currentID)
	if err != nil {
		return fmt.Errorf("failed to list parents: %w", err)
	}
	for _, edge := range edges {
		if err := t.collectAll(ctx, edge.ParentID, key, out); err != nil {
			return err
		}
	}

	return nil
}

// ResolveAllForKeys roda ResolveAll para cada chave pedida, com um traversal
// novo por chave para a precedência por chave ficar idêntica à da chamada
// individual.
func (s *ResolverService) ResolveAllForKeys(ctx context.Context, nodeID int64, keys []string) (map[string][]entities.Attribute, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.ResolveAllForKeys - failed to load node: %w", err)
	}
	if node == nil {
		return map[string][]entities.Attribute{}, nil
	}

	result := make(map[string][]entities.Attribute, len(keys))
	for _, key := range keys {
		t := s.newTraversal(node)
		var attrs []entities.Attribute
		if err := t.collectAll(ctx, nodeID, key, &attrs); err != nil {
			return nil, fmt.Errorf("ResolverService.ResolveAllForKeys - %w", err)
		}
		if len(attrs) > 0 {
			result[key] = attrs
		}
	}
	return result, nil
}
