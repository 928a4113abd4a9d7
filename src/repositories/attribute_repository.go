package repositories

import (
	"context"
	"fmt"
	"umsgraph/src/domain/entities"
	"umsgraph/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttributeRepository struct {
	pool *pgxpool.Pool
}

func NewAttributeRepository(pool *pgxpool.Pool) *AttributeRepository {
	return &AttributeRepository{pool: pool}
}

const attributeColumns = `id, node_id, key, value, created_at, updated_at`

func (r *AttributeRepository) GetOwn(ctx context.Context, nodeID int64, key string) (*entities.Attribute, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM attributes
		WHERE node_id = $1 AND key = $2;
	`, attributeColumns)

	var attr entities.Attribute
	err := r.pool.QueryRow(ctx, query, nodeID, key).Scan(
		&attr.ID, &attr.NodeID, &attr.Key, &attr.Value, &attr.CreatedAt, &attr.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("AttributeRepository.GetOwn - query failed: %w", err)
	}
	return &attr, nil
}

func (r *AttributeRepository) ListOwn(ctx context.Context, nodeID int64) ([]entities.Attribute, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM attributes
		WHERE node_id = $1
		ORDER BY key;
	`, attributeColumns)

	rows, err := r.pool.Query(ctx, query, nodeID)
	if err != nil {
		return nil, fmt.Errorf("AttributeRepository.ListOwn - query failed: %w", err)
	}
	defer rows.Close()

	return scanAttributes(rows)
}

func (r *AttributeRepository) ListByKey(ctx context.Context, key string) ([]entities.Attribute, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM attributes
		WHERE key = $1
		ORDER BY node_id;
	`, attributeColumns)

	rows, err := r.pool.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("AttributeRepository.ListByKey - query failed: %w", err)
	}
	defer rows.Close()

	return scanAttributes(rows)
}

func scanAttributes(rows pgx.Rows) ([]entities.Attribute, error) {
	var attrs []entities.Attribute
	for rows.Next() {
		var attr entities.Attribute
		if err := rows.Scan(&attr.ID, &attr.NodeID, &attr.Key, &attr.Value, &attr.CreatedAt, &attr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("AttributeRepository - failed to scan attribute: %w", err)
		}
		attrs = append(attrs, attr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AttributeRepository - error iterating rows: %w", err)
	}
	return attrs, nil
}

// Upsert grava a linha (node_id, key) e retorna true quando ela foi criada.
func (r *AttributeRepository) Upsert(ctx context.Context, attr *entities.Attribute) (bool, error) {
	query := `
		INSERT INTO attributes (node_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (node_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted;
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query, attr.NodeID, attr.Key, attr.Value).
		Scan(&attr.ID, &attr.CreatedAt, &attr.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("AttributeRepository.Upsert - upsert failed: %w", err)
	}
	return inserted, nil
}

// BulkUpsert grava o mapa inteiro numa única transação: tabela temporária +
// CopyFrom + INSERT..SELECT, tudo ou nada.
func (r *AttributeRepository) BulkUpsert(ctx context.Context, nodeID int64, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tempTableQuery := `CREATE TEMP TABLE temp_attributes (
		node_id BIGINT, key TEXT, value BYTEA
	) ON COMMIT DROP;`
	if _, err := tx.Exec(ctx, tempTableQuery); err != nil {
		return fmt.Errorf("failed to create temp attributes table: %w", err)
	}

	rows := make([][]interface{}, 0, len(values))
	for key, value := range values {
		rows = append(rows, []interface{}{nodeID, key, value})
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"temp_attributes"},
		[]string{"node_id", "key", "value"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy attributes to temp table: %w", err)
	}

	query := `
		INSERT INTO attributes (node_id, key, value)
		SELECT node_id, key, value FROM temp_attributes
		ON CONFLICT (node_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = NOW()
		WHERE attributes.value IS DISTINCT FROM excluded.value;
	`
	if _, err := tx.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to execute bulk upsert: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *AttributeRepository) InsertMissing(ctx context.Context, nodeIDs []int64, defaults map[string][]byte) error {
	if len(nodeIDs) == 0 || len(defaults) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attributes (node_id, key, value)
		SELECT n, $2, $3 FROM unnest($1::bigint[]) AS n
		ON CONFLICT (node_id, key) DO NOTHING;
	`
	for key, value := range defaults {
		if _, err := tx.Exec(ctx, query, nodeIDs, key, value); err != nil {
			return fmt.Errorf("failed to insert default for key %s: %w", key, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *AttributeRepository) DeleteKeys(ctx context.Context, nodeIDs []int64, keys []string) error {
	if len(nodeIDs) == 0 || len(keys) == 0 {
		return nil
	}

	query := `DELETE FROM attributes WHERE node_id = ANY($1) AND key = ANY($2);`
	if _, err := r.pool.Exec(ctx, query, nodeIDs, keys); err != nil {
		return fmt.Errorf("AttributeRepository.DeleteKeys - delete failed: %w", err)
	}
	return nil
}

func (r *AttributeRepository) DeleteByNodeID(ctx context.Context, nodeID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM attributes WHERE node_id = $1;`, nodeID); err != nil {
		return fmt.Errorf("AttributeRepository.DeleteByNodeID - delete failed: %w", err)
	}
	return nil
}
