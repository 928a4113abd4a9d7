package stubs

import (
	"time"

	"umsgraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type AttributeStub struct {
	attribute entities.Attribute
}

func NewAttributeStub() AttributeStub {
	now := time.Now().UTC()

	attribute := entities.Attribute{
		ID:        gofakeit.Int64(),
		NodeID:    gofakeit.Int64(),
		Key:       gofakeit.Word(),
		Value:     []byte(gofakeit.Sentence(3)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return AttributeStub{attribute: attribute}
}

func (as AttributeStub) WithNodeID(nodeID int64) AttributeStub {
	as.attribute.NodeID = nodeID
	return as
}

func (as AttributeStub) WithKey(key string) AttributeStub {
	as.attribute.Key = key
	return as
}

func (as AttributeStub) WithValue(value string) AttributeStub {
	as.attribute.Value = []byte(value)
	return as
}

func (as AttributeStub) Get() entities.Attribute {
	return as.attribute
}
