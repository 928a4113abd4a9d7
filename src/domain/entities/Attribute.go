package entities

import "time"

// Attribute é uma linha (node_id, key) -> value. O valor é um byte string
// arbitrário; a interpretação fica por conta do caller.
type Attribute struct {
	ID     int64  `json:"id"`
	NodeID int64  `json:"node_id"`
	Key    string `json:"key"`
	Value  []byte `json:"value"`

	// Decorações resolvidas na leitura a partir da schema entry e do nó dono.
	// Não são persistidas junto com a linha do atributo.
	Scope       *int      `json:"scope,omitempty"`
	Hidden      *bool     `json:"hidden,omitempty"`
	DataType    *DataType `json:"data_type,omitempty"`
	Description string    `json:"description,omitempty"`
	OwnerKind   NodeKind  `json:"owner_kind,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
