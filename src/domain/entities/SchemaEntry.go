package entities

import "time"

const (
	// Scope da chave: por nó ou global do sistema.
	ScopeNode   = 0
	ScopeSystem = 1
)

// SchemaEntry configura uma chave de atributo: scope, visibilidade, tamanho
// máximo, tipo declarado e a flag de override do valor herdado.
type SchemaEntry struct {
	ID  int64  `json:"id"`
	Key string `json:"key"`

	Scope  int  `json:"scope"`
	Hidden bool `json:"hidden"`
	// MaxSize em bytes; nil = ilimitado.
	MaxSize  *int64   `json:"max_size,omitempty"`
	DataType DataType `json:"data_type"`
	// OverrideParent: o valor próprio do nó substitui (em vez de somar com)
	// os valores herdados na visão consolidada.
	OverrideParent bool   `json:"override_parent"`
	Description    string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
