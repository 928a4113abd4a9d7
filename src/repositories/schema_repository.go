package repositories

import (
	"context"
	"fmt"
	"umsgraph/src/domain/entities"
	"umsgraph/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SchemaRepository struct {
	pool *pgxpool.Pool
}

func NewSchemaRepository(pool *pgxpool.Pool) *SchemaRepository {
	return &SchemaRepository{pool: pool}
}

const schemaColumns = `id, key, scope, hidden, max_size, data_type, override_parent, description, created_at, updated_at`

func (r *SchemaRepository) GetByKey(ctx context.Context, key string) (*entities.SchemaEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM schema_keys
		WHERE key = $1;
	`, schemaColumns)

	var entry entities.SchemaEntry
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&entry.ID, &entry.Key, &entry.Scope, &entry.Hidden, &entry.MaxSize,
		&entry.DataType, &entry.OverrideParent, &entry.Description,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("SchemaRepository.GetByKey - query failed: %w", err)
	}
	return &entry, nil
}

func (r *SchemaRepository) ListAll(ctx context.Context) ([]entities.SchemaEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM schema_keys
		ORDER BY key;
	`, schemaColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SchemaRepository.ListAll - query failed: %w", err)
	}
	defer rows.Close()

	var entries []entities.SchemaEntry
	for rows.Next() {
		var entry entities.SchemaEntry
		if err := rows.Scan(
			&entry.ID, &entry.Key, &entry.Scope, &entry.Hidden, &entry.MaxSize,
			&entry.DataType, &entry.OverrideParent, &entry.Description,
			&entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("SchemaRepository.ListAll - failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SchemaRepository.ListAll - error iterating rows: %w", err)
	}
	return entries, nil
}
