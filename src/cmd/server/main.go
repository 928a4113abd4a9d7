package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"umsgraph/src/domain"
	"umsgraph/src/helper/env"
	"umsgraph/src/infra/postgres"
	"umsgraph/src/infra/redis"
	"umsgraph/src/repositories"
	"umsgraph/src/server"
	"umsgraph/src/services/attributes"
	"umsgraph/src/services/membership"
	"umsgraph/src/services/resolver"
	"umsgraph/src/services/schema"
	"umsgraph/src/services/tree"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newNodeStore,
			newAttributeStore,
			newMembershipStore,
			newSchemaStore,
			newTreeStore,
			newSchemaRegistry,
			newAttributeService,
			newMembershipService,
			newResolverService,
			newTreeService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerSchemaHooks),
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newSQLClient configures and returns a pgxpool connection pool
func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func newNodeStore(pool *pgxpool.Pool) domain.NodeStore {
	return repositories.NewNodeRepository(pool)
}

// newAttributeStore liga o cache Redis por cima do repositório quando
// REDIS_ADDRS está configurado; sem ele o serviço fala direto com o Postgres.
func newAttributeStore(pool *pgxpool.Pool) domain.AttributeStore {
	attributeRepository := repositories.NewAttributeRepository(pool)

	redisAddrs := env.GetString("REDIS_ADDRS", "")
	if redisAddrs == "" {
		return attributeRepository
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 100)
	cacheTTL := env.GetDurationSeconds("CACHE_TTL_SECONDS", 300)
	redisClient := redis.NewRedisClient(redisAddrs, redisPoolSize, cacheTTL)

	return repositories.NewCachedAttributeRepository(attributeRepository, redisClient)
}

func newMembershipStore(pool *pgxpool.Pool) domain.MembershipStore {
	return repositories.NewMembershipRepository(pool)
}

func newSchemaStore(pool *pgxpool.Pool) domain.SchemaStore {
	return repositories.NewSchemaRepository(pool)
}

func newTreeStore(pool *pgxpool.Pool) domain.TreeStore {
	return repositories.NewTreeRepository(pool)
}

func newSchemaRegistry(schemaStore domain.SchemaStore) *schema.Registry {
	return schema.NewRegistry(schemaStore)
}

func newAttributeService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	registry *schema.Registry,
) *attributes.AttributeService {
	return attributes.NewAttributeService(nodeStore, attributeStore, registry)
}

func newMembershipService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	membershipStore domain.MembershipStore,
) *membership.MembershipService {
	return membership.NewMembershipService(nodeStore, attributeStore, membershipStore)
}

func newResolverService(
	nodeStore domain.NodeStore,
	attributeStore domain.AttributeStore,
	membershipStore domain.MembershipStore,
	registry *schema.Registry,
) *resolver.ResolverService {
	resolverService := resolver.NewResolverService(nodeStore, attributeStore, membershipStore, registry)
	resolverService.RegisterRewriteHook(domain.KeyStorage, resolver.StorageMarkerHook)
	return resolverService
}

func newTreeService(treeStore domain.TreeStore, attributeStore domain.AttributeStore) *tree.TreeService {
	return tree.NewTreeService(treeStore, attributeStore)
}

func newServer(
	logger *slog.Logger,
	membershipService *membership.MembershipService,
	attributeService *attributes.AttributeService,
	resolverService *resolver.ResolverService,
	treeService *tree.TreeService,
	registry *schema.Registry,
) *server.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	server := server.NewServer(logger, port, membershipService, attributeService, resolverService, treeService, registry)

	return server
}

// registerSchemaHooks carrega o snapshot de schema na subida. Falha de reload
// só loga: o registry segue com o snapshot anterior (vazio na primeira carga,
// preenchido sob demanda pelo read-through).
func registerSchemaHooks(lc fx.Lifecycle, logger *slog.Logger, registry *schema.Registry) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := registry.Refresh(ctx); err != nil {
				logger.Error("Failed to load schema snapshot", "error", err)
			}
			return nil
		},
	})
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
