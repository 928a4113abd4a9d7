package repositories

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"umsgraph/src/domain/entities"
	"umsgraph/src/infra/redis"
)

// CachedAttributeRepository decora o AttributeRepository com cache de leitura
// no Redis. Cada chave de cache é registrada num set registry:node:<id>,
// permitindo invalidar tudo que toca um nó quando ele recebe escrita.
type CachedAttributeRepository struct {
	attributeRepository *AttributeRepository
	redisClient         *redis.RedisClient
}

func NewCachedAttributeRepository(
	attributeRepository *AttributeRepository,
	redisClient *redis.RedisClient,
) *CachedAttributeRepository {
	return &CachedAttributeRepository{
		attributeRepository: attributeRepository,
		redisClient:         redisClient,
	}
}

func (r *CachedAttributeRepository) GetOwn(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error) {
	cacheKey := r.generateCacheKey(fmt.Sprintf("own:%d:%s", nodeID, key))

	var cached []entities.Attribute
	found, err := r.getFromCache(ctx, cacheKey, &cached)
	if found && err == nil {
		if len(cached) == 0 {
			return nil, nil
		}
		attr := cached[0]
		return &attr, nil
	}
	if err != nil {
		// Erro de cache não derruba a leitura, segue para o PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	attr, err := r.attributeRepository.GetOwn(ctx, nodeID, key)
	if err != nil {
		return nil, err
	}

	// Ausência também é cacheada, como slice vazio.
	toCache := []entities.Attribute{}
	if attr != nil {
		toCache = append(toCache, *attr)
	}
	r.setInBackground(cacheKey, toCache, []int64{nodeID})

	return attr, nil
}

func (r *CachedAttributeRepository) ListOwn(ctx context.Context, nodeID int64) ([]entities.Attribute, error) {
	cacheKey := r.generateCacheKey(fmt.Sprintf("list:%d", nodeID))

	var cached []entities.Attribute
	found, err := r.getFromCache(ctx, cacheKey, &cached)
	if found && err == nil {
		return cached, nil
	}
	if err != nil {
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	attrs, err := r.attributeRepository.ListOwn(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	r.setInBackground(cacheKey, attrs, []int64{nodeID})
	return attrs, nil
}

// ListByKey varre a tabela inteira por chave, usada por rotinas administrativas;
// não passa pelo cache.
func (r *CachedAttributeRepository) ListByKey(ctx context.Context, key string) ([]entities.Attribute, error) {
	return r.attributeRepository.ListByKey(ctx, key)
}

func (r *CachedAttributeRepository) Upsert(ctx context.Context, attr *entities.Attribute) (bool, error) {
	created, err := r.attributeRepository.Upsert(ctx, attr)
	if err != nil {
		return false, err
	}
	r.invalidateInBackground([]int64{attr.NodeID})
	return created, nil
}

func (r *CachedAttributeRepository) BulkUpsert(ctx context.Context, nodeID int64, values map[string][]byte) error {
	if err := r.attributeRepository.BulkUpsert(ctx, nodeID, values); err != nil {
		return err
	}
	r.invalidateInBackground([]int64{nodeID})
	return nil
}

func (r *CachedAttributeRepository) InsertMissing(ctx context.Context, nodeIDs []int64, defaults map[string][]byte) error {
	if err := r.attributeRepository.InsertMissing(ctx, nodeIDs, defaults); err != nil {
		return err
	}
	r.invalidateInBackground(nodeIDs)
	return nil
}

func (r *CachedAttributeRepository) DeleteKeys(ctx context.Context, nodeIDs []int64, keys []string) error {
	if err := r.attributeRepository.DeleteKeys(ctx, nodeIDs, keys); err != nil {
		return err
	}
	r.invalidateInBackground(nodeIDs)
	return nil
}

func (r *CachedAttributeRepository) DeleteByNodeID(ctx context.Context, nodeID int64) error {
	if err := r.attributeRepository.DeleteByNodeID(ctx, nodeID); err != nil {
		return err
	}
	r.invalidateInBackground([]int64{nodeID})
	return nil
}

func (r *CachedAttributeRepository) InvalidateByNodeIDs(ctx context.Context, nodeIDs []int64) error {
	if len(nodeIDs) == 0 {
		return nil
	}

	registryKeys := make([]string, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		registryKeys[i] = fmt.Sprintf("registry:node:%d", nodeID)
	}

	registryResults, err := r.redisClient.GetMultipleSetMembers(ctx, registryKeys)
	if err != nil {
		return fmt.Errorf("failed to get registry data: %w", err)
	}

	allKeysToDelete := make(map[string]bool)
	for registryKey, relatedKeys := range registryResults {
		allKeysToDelete[registryKey] = true
		for _, relatedKey := range relatedKeys {
			allKeysToDelete[relatedKey] = true
		}
	}

	keysToDelete := make([]string, 0, len(allKeysToDelete))
	for key := range allKeysToDelete {
		keysToDelete = append(keysToDelete, key)
	}

	if len(keysToDelete) > 0 {
		log.Printf("Invalidating %d cache keys for %d nodes", len(keysToDelete), len(nodeIDs))
		return r.redisClient.InvalidateKeys(ctx, keysToDelete)
	}

	return nil
}

func (r *CachedAttributeRepository) generateCacheKey(keyData string) string {
	// Hash para chave mais limpa e consistente
	hash := md5.Sum([]byte(keyData))
	return fmt.Sprintf("attrs:%x", hash)
}

func (r *CachedAttributeRepository) getFromCache(ctx context.Context, cacheKey string, out *[]entities.Attribute) (bool, error) {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return found, err
	}

	if err := json.Unmarshal([]byte(cachedJSON), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return true, nil
}

func (r *CachedAttributeRepository) setInBackground(cacheKey string, attrs []entities.Attribute, nodeIDs []int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		dataJSON, err := json.Marshal(attrs)
		if err != nil {
			log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
			return
		}

		registryKeys := make([]string, len(nodeIDs))
		for i, nodeID := range nodeIDs {
			registryKeys[i] = fmt.Sprintf("registry:node:%d", nodeID)
		}

		if err := r.redisClient.SetWithRegistry(ctx, cacheKey, string(dataJSON), registryKeys); err != nil {
			log.Printf("Failed to set cache with registry for key %s: %v", cacheKey, err)
		}
	}()
}

func (r *CachedAttributeRepository) invalidateInBackground(nodeIDs []int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.InvalidateByNodeIDs(ctx, nodeIDs); err != nil {
			log.Printf("Failed to invalidate cache for nodes %v: %v", nodeIDs, err)
		}
	}()
}
