package entities

import "time"

type NodeKind int

const (
	KindUnknown     NodeKind = 0
	KindUser        NodeKind = 1
	KindGroup       NodeKind = 2
	KindApplication NodeKind = 3
	KindDepartment  NodeKind = 4
	KindAdmin       NodeKind = 5
)

// É o "nó" do grafo de membership: usuário, grupo, aplicação ou departamento,
// todos no mesmo namespace e com o mesmo attribute store.
type Node struct {
	ID int64 `json:"id"`
	// Kind substitui o antigo atributo string "category": classificado
	// explicitamente e validado na escrita.
	Kind NodeKind `json:"kind"`
	// Identificador externo do nó (visível fora do sistema).
	UniqueID  string    `json:"unique_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (k NodeKind) Valid() bool {
	return k > KindUnknown && k <= KindAdmin
}

func (k NodeKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindGroup:
		return "group"
	case KindApplication:
		return "application"
	case KindDepartment:
		return "department"
	case KindAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
