package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"umsgraph/src/adapters/kafka/consumers"
	"umsgraph/src/domain"
	"umsgraph/src/helper/env"
	"umsgraph/src/infra/kafka"
	"umsgraph/src/infra/postgres"
	"umsgraph/src/infra/redis"
	"umsgraph/src/repositories"
	"umsgraph/src/services/attributes"
	"umsgraph/src/services/membership"
	"umsgraph/src/services/schema"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Attribute Sync Consumer with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaClient,
			newNodeStore,
			newAttributeStore,
			newMembershipStore,
			newSchemaStore,
			newSchemaRegistry,
			newAttributeService,
			newMembershipService,
			newAttributeSyncConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	// Start the application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down attribute sync consumer...")

	// Stop the application
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Attribute sync consumer shutdown complete")
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

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisHosts := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTL := env.GetDurationSeconds("REDIS_DEFAULT_TTL_SECONDS", 120*time.Second)

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.MustGetString("KAFKA_ATTRIBUTE_SYNC_CONSUMER_GROUP_ID")
	batchSize := env.MustGetInt("KAFKA_BATCH_SIZE")

	return kafka.NewKafkaClient(brokers, groupID, batchSize)
}

func newNodeStore(readWriteClient *postgres.ReadWriteClient) domain.NodeStore {
	return repositories.NewNodeRepository(readWriteClient.GetReadPool())
}

// newAttributeStore escreve no pool de escrita e invalida o cache compartilhado
// com a API de leitura.
func newAttributeStore(readWriteClient *postgres.ReadWriteClient, redisClient *redis.RedisClient) domain.AttributeStore {
	attributeRepository := repositories.NewAttributeRepository(readWriteClient.GetWritePool())
	return repositories.NewCachedAttributeRepository(attributeRepository, redisClient)
}

func newMembershipStore(readWriteClient *postgres.ReadWriteClient) domain.MembershipStore {
	return repositories.NewMembershipRepository(readWriteClient.GetReadPool())
}

func newSchemaStore(readWriteClient *postgres.ReadWriteClient) domain.SchemaStore {
	return repositories.NewSchemaRepository(readWriteClient.GetReadPool())
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

func newAttributeSyncConsumer(
	logger *slog.Logger,
	attributeService *attributes.AttributeService,
	membershipService *membership.MembershipService,
) *consumers.AttributeSyncConsumer {
	return consumers.NewAttributeSyncConsumer(logger, attributeService, membershipService)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	registry *schema.Registry,
	attributeConsumer *consumers.AttributeSyncConsumer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := registry.Refresh(ctx); err != nil {
				logger.Error("Failed to load schema snapshot", "error", err)
			}

			topic := env.GetString("KAFKA_ATTRIBUTE_SYNC_CONSUMER_TOPIC")
			logger.Info("Starting attribute sync consumer", "topic", topic)

			// Start consumer in background
			go func() {
				if err := attributeConsumer.Start(ctx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down Kafka client...")
			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}
			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
}
