package repositories

import (
	"context"
	"fmt"
	"umsgraph/src/domain/entities"
	"umsgraph/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NodeRepository struct {
	pool *pgxpool.Pool
}

func NewNodeRepository(pool *pgxpool.Pool) *NodeRepository {
	return &NodeRepository{pool: pool}
}

func (r *NodeRepository) GetByID(ctx context.Context, id int64) (*entities.Node, error) {
	query := `
		SELECT id, kind, unique_id, created_at, updated_at
		FROM nodes
		WHERE id = $1;
	`
	return r.scanOne(ctx, query, id)
}

func (r *NodeRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*entities.Node, error) {
	query := `
		SELECT id, kind, unique_id, created_at, updated_at
		FROM nodes
		WHERE unique_id = $1;
	`
	return r.scanOne(ctx, query, uniqueID)
}

func (r *NodeRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entities.Node, error) {
	var node entities.Node
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&node.ID, &node.Kind, &node.UniqueID, &node.CreatedAt, &node.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("NodeRepository - query failed: %w", err)
	}
	return &node, nil
}

func (r *NodeRepository) Insert(ctx context.Context, node *entities.Node) error {
	query := `
		INSERT INTO nodes (kind, unique_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query, node.Kind, node.UniqueID).
		Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		return fmt.Errorf("NodeRepository.Insert - insert failed: %w", err)
	}
	return nil
}

func (r *NodeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM nodes WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("NodeRepository.Delete - delete failed: %w", err)
	}
	return nil
}
