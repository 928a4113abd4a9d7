package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"umsgraph/src/services/attributes"
	"umsgraph/src/services/membership"
	"umsgraph/src/services/resolver"
	"umsgraph/src/services/schema"
	"umsgraph/src/services/tree"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger *slog.Logger
	server *http.Server
	mux    *http.ServeMux
	port   int

	membershipService *membership.MembershipService
	attributeService  *attributes.AttributeService
	resolverService   *resolver.ResolverService
	treeService       *tree.TreeService
	registry          *schema.Registry
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	membershipService *membership.MembershipService,
	attributeService *attributes.AttributeService,
	resolverService *resolver.ResolverService,
	treeService *tree.TreeService,
	registry *schema.Registry,
) *Server {
	server := &Server{
		mux:               http.NewServeMux(),
		port:              port,
		logger:            logger,
		membershipService: membershipService,
		attributeService:  attributeService,
		resolverService:   resolverService,
		treeService:       treeService,
		registry:          registry,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.mux.HandleFunc("POST /v1/nodes", server.CreateNode)
	server.mux.HandleFunc("GET /v1/nodes/{id}", server.GetNode)
	server.mux.HandleFunc("DELETE /v1/nodes/{id}", server.DeleteNode)

	server.mux.HandleFunc("GET /v1/nodes/{id}/attributes", server.ListAttributes)
	server.mux.HandleFunc("GET /v1/nodes/{id}/attributes/{key}", server.ResolveAttribute)
	server.mux.HandleFunc("PUT /v1/nodes/{id}/attributes/{key}", server.UpsertAttribute)

	server.mux.HandleFunc("GET /v1/nodes/{id}/parents", server.ListParents)
	server.mux.HandleFunc("PUT /v1/nodes/{id}/parents", server.ReplaceParents)
	server.mux.HandleFunc("POST /v1/nodes/{id}/parents/{parentId}", server.Link)
	server.mux.HandleFunc("DELETE /v1/nodes/{id}/parents/{parentId}", server.Unlink)
	server.mux.HandleFunc("GET /v1/nodes/{id}/children", server.ListChildren)

	server.mux.HandleFunc("GET /v1/tree", server.GetTree)
	server.mux.HandleFunc("POST /v1/tree/nodes", server.CreateTreeNode)
	server.mux.HandleFunc("PUT /v1/tree/nodes/{id}", server.UpdateTreeNode)
	server.mux.HandleFunc("DELETE /v1/tree/nodes/{id}", server.RemoveTreeNode)

	server.mux.HandleFunc("GET /v1/schema/keys", server.ListSchemaKeys)
	server.mux.HandleFunc("POST /v1/schema/refresh", server.RefreshSchema)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
