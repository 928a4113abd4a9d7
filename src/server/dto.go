package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"umsgraph/src/domain"
	"umsgraph/src/domain/entities"
)

type NodeDTO struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	UniqueID  string    `json:"unique_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AttributeDTO struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Scope       *int    `json:"scope,omitempty"`
	Hidden      *bool   `json:"hidden,omitempty"`
	DataType    *string `json:"data_type,omitempty"`
	Description string  `json:"description,omitempty"`
	OwnerKind   string  `json:"owner_kind,omitempty"`
}

type TreeNodeDTO struct {
	ID          int64           `json:"id"`
	ParentID    int64           `json:"parent_id"`
	Name        string          `json:"name"`
	Type        int             `json:"type"`
	FormJSON    json.RawMessage `json:"form_json,omitempty"`
	Description string          `json:"description,omitempty"`
	Children    []*TreeNodeDTO  `json:"children,omitempty"`
}

func MapNodeToResponse(node *entities.Node) *NodeDTO {
	if node == nil {
		return nil
	}
	return &NodeDTO{
		ID:        node.ID,
		Kind:      node.Kind.String(),
		UniqueID:  node.UniqueID,
		CreatedAt: node.CreatedAt,
		UpdatedAt: node.UpdatedAt,
	}
}

func MapAttributeToResponse(attr *entities.Attribute) *AttributeDTO {
	if attr == nil {
		return nil
	}
	dto := &AttributeDTO{
		Key:         attr.Key,
		Value:       string(attr.Value),
		Scope:       attr.Scope,
		Hidden:      attr.Hidden,
		Description: attr.Description,
	}
	if attr.DataType != nil {
		dt := string(*attr.DataType)
		dto.DataType = &dt
	}
	if attr.OwnerKind != entities.KindUnknown {
		dto.OwnerKind = attr.OwnerKind.String()
	}
	return dto
}

func MapAttributesToResponse(attrs []entities.Attribute) []*AttributeDTO {
	dtos := make([]*AttributeDTO, 0, len(attrs))
	for i := range attrs {
		dtos = append(dtos, MapAttributeToResponse(&attrs[i]))
	}
	return dtos
}

func MapTreeNodeToResponse(node *entities.TreeNode) *TreeNodeDTO {
	if node == nil {
		return nil
	}
	dto := &TreeNodeDTO{
		ID:          node.ID,
		ParentID:    node.ParentID,
		Name:        node.Name,
		Type:        node.Type,
		FormJSON:    node.FormJSON,
		Description: node.Description,
	}
	for _, child := range node.Children {
		dto.Children = append(dto.Children, MapTreeNodeToResponse(child))
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}

// writeDomainError traduz os sentinelas de domínio para status HTTP; qualquer
// outra coisa vira 500 genérico sem vazar detalhe interno.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrParentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrUnknownKey),
		errors.Is(err, domain.ErrSizeExceeded),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrParentCycle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrEdgeExists),
		errors.Is(err, domain.ErrChildrenExist),
		errors.Is(err, domain.ErrReferenced):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("ERROR: unexpected failure: %v", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
	}
}
