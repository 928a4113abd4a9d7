package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"umsgraph/src/domain/entities"
)

type TreeNodeRequest struct {
	ParentID    int64           `json:"parent_id"`
	Name        string          `json:"name"`
	Type        int             `json:"type"`
	FormJSON    json.RawMessage `json:"form_json,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	var typeFilter *int
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		value, err := strconv.Atoi(typeStr)
		if err != nil {
			http.Error(w, "Invalid type filter", http.StatusBadRequest)
			return
		}
		typeFilter = &value
	}

	roots, err := s.treeService.BuildTree(r.Context(), typeFilter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]*TreeNodeDTO, 0, len(roots))
	for _, root := range roots {
		dtos = append(dtos, MapTreeNodeToResponse(root))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) CreateTreeNode(w http.ResponseWriter, r *http.Request) {
	var req TreeNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	node := &entities.TreeNode{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Type:        req.Type,
		FormJSON:    req.FormJSON,
		Description: req.Description,
	}
	if err := s.treeService.Create(r.Context(), node); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MapTreeNodeToResponse(node))
}

func (s *Server) UpdateTreeNode(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	var req TreeNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	node := &entities.TreeNode{
		ID:          nodeID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Type:        req.Type,
		FormJSON:    req.FormJSON,
		Description: req.Description,
	}
	if err := s.treeService.Update(r.Context(), node); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MapTreeNodeToResponse(node))
}

func (s *Server) RemoveTreeNode(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	cascade := r.URL.Query().Get("cascade") == "true"
	if err := s.treeService.Remove(r.Context(), nodeID, cascade); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
