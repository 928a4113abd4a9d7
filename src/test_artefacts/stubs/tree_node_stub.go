package stubs

import (
	"encoding/json"
	"time"

	"umsgraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type TreeNodeStub struct {
	node entities.TreeNode
}

func NewTreeNodeStub() TreeNodeStub {
	now := time.Now().UTC()

	form := map[string]interface{}{
		"title": gofakeit.BuzzWord(),
	}
	formJSON, _ := json.Marshal(form)

	node := entities.TreeNode{
		ID:          gofakeit.Int64(),
		ParentID:    0,
		Name:        gofakeit.Company(),
		Type:        entities.TreeTypeDepartment,
		FormJSON:    formJSON,
		Description: gofakeit.Sentence(4),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return TreeNodeStub{node: node}
}

func (ts TreeNodeStub) WithParentID(parentID int64) TreeNodeStub {
	ts.node.ParentID = parentID
	return ts
}

func (ts TreeNodeStub) WithName(name string) TreeNodeStub {
	ts.node.Name = name
	return ts
}

func (ts TreeNodeStub) WithType(treeType int) TreeNodeStub {
	ts.node.Type = treeType
	return ts
}

func (ts TreeNodeStub) Get() entities.TreeNode {
	return ts.node
}
