package domain

import (
	"context"
	"umsgraph/src/domain/entities"
)

// Interfaces estreitas sobre o row store. Os services dependem só delas;
// as implementações pgx ficam em src/repositories e as de teste em
// src/test_artefacts/memstore. O grafo de dependências é resolvido uma vez
// no startup, sem lookups circulares entre services.

type NodeStore interface {
	// GetByID retorna nil (sem erro) quando o nó não existe.
	GetByID(ctx context.Context, id int64) (*entities.Node, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*entities.Node, error)
	Insert(ctx context.Context, node *entities.Node) error
	Delete(ctx context.Context, id int64) error
}

type AttributeStore interface {
	// GetOwn retorna o atributo próprio do nó, sem herança; nil quando ausente.
	GetOwn(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error)
	ListOwn(ctx context.Context, nodeID int64) ([]entities.Attribute, error)
	ListByKey(ctx context.Context, key string) ([]entities.Attribute, error)
	// Upsert grava a linha e informa se ela foi criada (true) ou sobrescrita.
	Upsert(ctx context.Context, attr *entities.Attribute) (bool, error)
	// BulkUpsert grava o conjunto inteiro como uma unidade: ou todas as
	// linhas entram, ou nenhuma.
	BulkUpsert(ctx context.Context, nodeID int64, values map[string][]byte) error
	// InsertMissing cria (nó, chave) -> default apenas onde a chave ainda não existe.
	InsertMissing(ctx context.Context, nodeIDs []int64, defaults map[string][]byte) error
	DeleteKeys(ctx context.Context, nodeIDs []int64, keys []string) error
	DeleteByNodeID(ctx context.Context, nodeID int64) error
}

type MembershipStore interface {
	ParentsOf(ctx context.Context, nodeID int64) ([]entities.MembershipEdge, error)
	ChildrenOf(ctx context.Context, parentID int64) ([]entities.MembershipEdge, error)
	Exists(ctx context.Context, nodeID, parentID int64) (bool, error)
	Insert(ctx context.Context, edge *entities.MembershipEdge) error
	Delete(ctx context.Context, nodeID, parentID int64) error
}

type SchemaStore interface {
	GetByKey(ctx context.Context, key string) (*entities.SchemaEntry, error)
	ListAll(ctx context.Context) ([]entities.SchemaEntry, error)
}

type TreeStore interface {
	GetByID(ctx context.Context, id int64) (*entities.TreeNode, error)
	ListChildren(ctx context.Context, parentID int64) ([]entities.TreeNode, error)
	// List retorna todos os nós, opcionalmente filtrados por tipo, ordenados
	// por (parent_id, id).
	List(ctx context.Context, typeFilter *int) ([]entities.TreeNode, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	CountSiblingNamed(ctx context.Context, parentID int64, name string, excludeID int64) (int64, error)
	Insert(ctx context.Context, node *entities.TreeNode) error
	Update(ctx context.Context, node *entities.TreeNode) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}
