package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"umsgraph/src/domain/entities"
)

type ReplaceParentsRequest struct {
	Category  string  `json:"category"`
	ParentIDs []int64 `json:"parent_ids"`
}

func parseParentID(r *http.Request, w http.ResponseWriter) (int64, bool) {
	parentIDStr := r.PathValue("parentId")
	if parentIDStr == "" {
		http.Error(w, "Parent ID is required", http.StatusBadRequest)
		return 0, false
	}
	parentID, err := strconv.ParseInt(parentIDStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid Parent ID format", http.StatusBadRequest)
		return 0, false
	}
	return parentID, true
}

func (s *Server) ListParents(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	parents, err := s.membershipService.ParentsOf(r.Context(), nodeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]*NodeDTO, 0, len(parents))
	for i := range parents {
		dtos = append(dtos, MapNodeToResponse(&parents[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) ListChildren(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	children, err := s.membershipService.ChildrenOf(r.Context(), nodeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]*NodeDTO, 0, len(children))
	for i := range children {
		dtos = append(dtos, MapNodeToResponse(&children[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) Link(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}
	parentID, ok := parseParentID(r, w)
	if !ok {
		return
	}

	if err := s.membershipService.Link(r.Context(), nodeID, parentID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Unlink(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}
	parentID, ok := parseParentID(r, w)
	if !ok {
		return
	}

	if err := s.membershipService.Unlink(r.Context(), nodeID, parentID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ReplaceParents(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	var req ReplaceParentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category := parseKind(req.Category)
	if category == entities.KindUnknown {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	if err := s.membershipService.ReplaceParents(r.Context(), nodeID, req.ParentIDs, category); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
