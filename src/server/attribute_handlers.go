package server

import (
	"encoding/json"
	"net/http"
)

type UpsertAttributeRequest struct {
	Value string `json:"value"`
}

type UpsertAttributeResponse struct {
	Created bool `json:"created"`
}

// ListAttributes devolve os atributos do nó. view=own (default) lista só os
// valores próprios; view=effective devolve a visão consolidada com herança.
// hidden=true/false filtra pela visibilidade do schema, só na visão own.
func (s *Server) ListAttributes(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	if r.URL.Query().Get("view") == "effective" {
		attrs, err := s.resolverService.EffectiveAttributes(r.Context(), nodeID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MapAttributesToResponse(attrs))
		return
	}

	var hidden *bool
	if hiddenStr := r.URL.Query().Get("hidden"); hiddenStr != "" {
		value := hiddenStr == "true"
		hidden = &value
	}

	attrs, err := s.attributeService.ListOwn(r.Context(), nodeID, hidden)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapAttributesToResponse(attrs))
}

// ResolveAttribute devolve o valor da chave com herança: primeiro encontrado
// por default, todas as ocorrências com all=true.
func (s *Server) ResolveAttribute(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "Attribute key is required", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("all") == "true" {
		attrs, err := s.resolverService.ResolveAll(r.Context(), nodeID, key)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MapAttributesToResponse(attrs))
		return
	}

	attr, err := s.resolverService.Resolve(r.Context(), nodeID, key)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if attr == nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, MapAttributeToResponse(attr))
}

func (s *Server) UpsertAttribute(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := parseNodeID(r, w)
	if !ok {
		return
	}

	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "Attribute key is required", http.StatusBadRequest)
		return
	}

	var req UpsertAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.attributeService.Upsert(r.Context(), nodeID, key, []byte(req.Value))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, UpsertAttributeResponse{Created: created})
}
