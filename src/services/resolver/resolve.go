package resolver

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// Resolve devolve o primeiro valor encontrado para a chave: o valor próprio
// do nó vence e, na falta dele, os ancestrais são percorridos em profundidade
// na ordem de inserção das arestas. Nó inexistente ou chave ausente no grafo
// inteiro devolvem nil, nunca erro.
func (s *ResolverService) Resolve(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error) {
	node, err := s.nodeStore.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.Resolve - failed to load node: %w", err)
	}
	if node == nil {
		return nil, nil
	}

	t := s.newTraversal(node)
	attr, err := t.resolveFirst(ctx, nodeID, key)
	if err != nil {
		return nil, fmt.Errorf("ResolverService.Resolve - %w", err)
	}
	return attr, nil
}

func (t *traversal) resolveFirst(ctx context.Context, currentID int64, key string) (*entities.Attribute, error) {
	if t.visited[currentID] {
		return nil, nil
	}
	t.visited[currentID] = true

	attr, err := t.s.attributeStore.GetOwn(ctx, currentID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute: %w", err)
	}
	if attr != nil {
		if err := t.finish(ctx, attr, currentID); err != nil {
			return nil, err
		}
		return attr, nil
	}

	edges, err := t.s.membershipStore.ParentsOf(ctx, currentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parents: %w", err)
	}
	for _, edge := range edges {
		attr, err := t.resolveFirst(ctx, edge.ParentID, key)
		if err != nil {
			return nil, err
		}
		if attr != nil {
			return attr, nil
		}
	}

	return nil, nil
}
