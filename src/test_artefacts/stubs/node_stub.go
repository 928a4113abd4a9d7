package stubs

import (
	"time"

	"umsgraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type NodeStub struct {
	node entities.Node
}

func NewNodeStub() NodeStub {
	now := time.Now().UTC()

	node := entities.Node{
		ID:        gofakeit.Int64(),
		Kind:      entities.KindUser,
		UniqueID:  gofakeit.UUID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return NodeStub{node: node}
}

func (ns NodeStub) WithKind(kind entities.NodeKind) NodeStub {
	ns.node.Kind = kind
	return ns
}

func (ns NodeStub) WithUniqueID(uniqueID string) NodeStub {
	ns.node.UniqueID = uniqueID
	return ns
}

func (ns NodeStub) Get() entities.Node {
	return ns.node
}
