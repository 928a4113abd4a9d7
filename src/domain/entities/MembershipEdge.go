package entities

import "time"

// MembershipEdge é a aresta direcionada filho -> pai usada para herança.
// O conjunto de arestas forma um grafo direcionado, não necessariamente uma
// árvore: um filho pode ter vários pais.
type MembershipEdge struct {
	ID        int64     `json:"id"`
	NodeID    int64     `json:"node_id"`
	ParentID  int64     `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}
