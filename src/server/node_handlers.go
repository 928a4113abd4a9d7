package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"umsgraph/src/domain/entities"
)

type CreateNodeRequest struct {
	Kind       string            `json:"kind"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func parseKind(kind string) entities.NodeKind {
	switch kind {
	case "user":
		return entities.KindUser
	case "group":
		return entities.KindGroup
	case "application":
		return entities.KindApplication
	case "department":
		return entities.KindDepartment
	case "admin":
		return entities.KindAdmin
	default:
		return entities.KindUnknown
	}
}

func parseNodeID(r *http.Request, w http.ResponseWriter) (int64, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		http.Error(w, "Node ID is required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid Node ID format", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	starter := make(map[string][]byte, len(req.Attributes))
	for key, value := range req.Attributes {
		starter[key] = []byte(value)
	}

	node, err := s.membershipService.CreateNode(r.Context(), parseKind(req.Kind), starter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MapNodeToResponse(node))
}

func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	node, err := s.membershipService.GetNode(r.Context(), nodeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MapNodeToResponse(node))
}

func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	if err := s.membershipService.DeleteNode(r.Context(), nodeID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
