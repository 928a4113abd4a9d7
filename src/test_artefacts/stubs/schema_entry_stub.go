package stubs

import (
	"time"

	"umsgraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type SchemaEntryStub struct {
	entry entities.SchemaEntry
}

func NewSchemaEntryStub() SchemaEntryStub {
	now := time.Now().UTC()

	entry := entities.SchemaEntry{
		ID:          gofakeit.Int64(),
		Key:         gofakeit.Word(),
		Scope:       entities.ScopeNode,
		Hidden:      false,
		DataType:    entities.DataTypeString,
		Description: gofakeit.Sentence(4),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return SchemaEntryStub{entry: entry}
}

func (ss SchemaEntryStub) WithKey(key string) SchemaEntryStub {
	ss.entry.Key = key
	return ss
}

func (ss SchemaEntryStub) WithHidden(hidden bool) SchemaEntryStub {
	ss.entry.Hidden = hidden
	return ss
}

func (ss SchemaEntryStub) WithMaxSize(maxSize int64) SchemaEntryStub {
	ss.entry.MaxSize = &maxSize
	return ss
}

func (ss SchemaEntryStub) WithDataType(dataType entities.DataType) SchemaEntryStub {
	ss.entry.DataType = dataType
	return ss
}

func (ss SchemaEntryStub) WithOverrideParent(override bool) SchemaEntryStub {
	ss.entry.OverrideParent = override
	return ss
}

func (ss SchemaEntryStub) Get() entities.SchemaEntry {
	return ss.entry
}
