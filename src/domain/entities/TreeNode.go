package entities

import (
	"encoding/json"
	"time"
)

const (
	TreeTypeApplication = 1
	TreeTypeDepartment  = 2
)

// TreeNode é um nó da hierarquia organizacional/template, separada do grafo
// de membership: um único pai, nome único entre irmãos, raiz com parent 0.
type TreeNode struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	// Formulário dinâmico associado ao nó.
	FormJSON    json.RawMessage `json:"form_json,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Somente saída, montado por BuildTree.
	Children []*TreeNode `json:"children,omitempty"`
}

func ValidTreeType(t int) bool {
	return t == TreeTypeApplication || t == TreeTypeDepartment
}
