package tree

import (
	"context"
	"fmt"

	"umsgraph/src/domain/entities"
)

// BuildTree monta a floresta em memória num passe só: mapa id -> nó e ligação
// filho -> pai. Nó cujo pai não aparece no resultado (filtrado por tipo ou
// inconsistência de dados) é promovido a raiz em vez de sumir da resposta.
func (s *TreeService) BuildTree(ctx context.Context, typeFilter *int) ([]*entities.TreeNode, error) {
	nodes, err := s.treeStore.List(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("TreeService.BuildTree - failed to list nodes: %w", err)
	}

	all := make(map[int64]*entities.TreeNode, len(nodes))
	for i := range nodes {
		nodes[i].Children = nil
		all[nodes[i].ID] = &nodes[i]
	}

	var roots []*entities.TreeNode
	for i := range nodes {
		node := &nodes[i]
		if node.ParentID == 0 {
			roots = append(roots, node)
			continue
		}
		parent, ok := all[node.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
