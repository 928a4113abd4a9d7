package resolver

import (
	"context"
	"fmt"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
	"umsgraph/src/helper/datatype"
	"umsgraph/src/services/schema"
)

// RewriteHook transforma o valor resolvido de uma chave na leitura. Recebe o
// nó para o qual a resolução foi pedida (não o dono do valor) e pode alterar
// o atributo in place. O valor persistido nunca muda.
type RewriteHook func(resolving *entities.Node, attr *entities.Attribute)

type ResolverService struct {
	nodeStore       domain.NodeStore
	attributeStore  domain.AttributeStore
	membershipStore domain.MembershipStore
	registry        *schema.Registry

	hooks map[string]RewriteHook
}

func NewResolverService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	membershipStore domain.MembershipStore,
	registry *schema.Registry,
) *ResolverService {
	return &ResolverService{
		nodeStore:       nodeStore,
		attributeStore:  attributeStore,
		membershipStore: membershipStore,
		registry:        registry,
		hooks:           make(map[string]RewriteHook),
	}
}

// RegisterRewriteHook pendura um hook para uma chave. Registrar durante o
// wiring, antes de atender tráfego; o mapa não é protegido por lock.
func (s *ResolverService) RegisterRewriteHook(key string, hook RewriteHook) {
	s.hooks[key] = hook
}

// traversal carrega o estado de uma resolução: visited garante no máximo uma
// visita por nó mesmo com ciclos e losangos no grafo, nodes evita recarregar
// o mesmo nó para decorar owner kind.
type traversal struct {
	s         *ResolverService
	resolving *entities.Node
	visited   map[int64]bool
	nodes     map[int64]*entities.Node
}

func (s *ResolverService) newTraversal(resolving *entities.Node) *traversal {
	t := &traversal{
		s:         s,
		resolving: resolving,
		visited:   make(map[int64]bool),
		nodes:     make(map[int64]*entities.Node),
	}
	t.nodes[resolving.ID] = resolving
	return t
}

func (t *traversal) node(ctx context.Context, id int64) (*entities.Node, error) {
	if node, ok := t.nodes[id]; ok {
		return node, nil
	}
	node, err := t.s.nodeStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load node %d: %w", id, err)
	}
	t.nodes[id] = node
	return node, nil
}

// finish decora o atributo e aplica o hook da chave, nessa ordem, para o hook
// enxergar o valor já tipado.
func (t *traversal) finish(ctx context.Context, attr *entities.Attribute, ownerID int64) error {
	owner, err := t.node(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner != nil {
		attr.OwnerKind = owner.Kind
	}

	if err := t.s.decorate(ctx, attr); err != nil {
		return err
	}
	if hook, ok := t.s.hooks[attr.Key]; ok {
		hook(t.resolving, attr)
	}
	return nil
}

func (s *ResolverService) decorate(ctx context.Context, attr *entities.Attribute) error {
	entry, err := s.registry.Get(ctx, attr.Key)
	if err != nil {
		return err
	}

	inferred := datatype.Infer(attr.Value)
	if entry == nil {
		attr.DataType = &inferred
		return nil
	}

	attr.Scope = &entry.Scope
	attr.Hidden = &entry.Hidden
	attr.Description = entry.Description
	dt := entry.DataType
	if dt == entities.DataTypeUnknown {
		dt = inferred
	}
	attr.DataType = &dt
	return nil
}
