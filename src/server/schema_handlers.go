package server

import (
	"net/http"
)

func (s *Server) ListSchemaKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.AllKeys())
}

// RefreshSchema força a recarga do snapshot de schema a partir do banco.
func (s *Server) RefreshSchema(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Refresh(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
