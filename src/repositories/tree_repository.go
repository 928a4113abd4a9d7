package repositories

import (
	"context"
	"fmt"
	"umsgraph/src/domain/entities"
	"umsgraph/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TreeRepository struct {
	pool *pgxpool.Pool
}

func NewTreeRepository(pool *pgxpool.Pool) *TreeRepository {
	return &TreeRepository{pool: pool}
}

const treeColumns = `id, parent_id, name, type, form_json, description, created_at, updated_at`

func (r *TreeRepository) GetByID(ctx context.Context, id int64) (*entities.TreeNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tree_nodes
		WHERE id = $1;
	`, treeColumns)

	var node entities.TreeNode
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&node.ID, &node.ParentID, &node.Name, &node.Type,
		&node.FormJSON, &node.Description, &node.CreatedAt, &node.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("TreeRepository.GetByID - query failed: %w", err)
	}
	return &node, nil
}

func (r *TreeRepository) ListChildren(ctx context.Context, parentID int64) ([]entities.TreeNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tree_nodes
		WHERE parent_id = $1
		ORDER BY id;
	`, treeColumns)

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("TreeRepository.ListChildren - query failed: %w", err)
	}
	defer rows.Close()

	return scanTreeNodes(rows)
}

func (r *TreeRepository) List(ctx context.Context, typeFilter *int) ([]entities.TreeNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tree_nodes
		WHERE ($1::int IS NULL OR type = $1)
		ORDER BY parent_id, id;
	`, treeColumns)

	rows, err := r.pool.Query(ctx, query, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("TreeRepository.List - query failed: %w", err)
	}
	defer rows.Close()

	return scanTreeNodes(rows)
}

func scanTreeNodes(rows pgx.Rows) ([]entities.TreeNode, error) {
	var nodes []entities.TreeNode
	for rows.Next() {
		var node entities.TreeNode
		if err := rows.Scan(
			&node.ID, &node.ParentID, &node.Name, &node.Type,
			&node.FormJSON, &node.Description, &node.CreatedAt, &node.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("TreeRepository - failed to scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TreeRepository - error iterating rows: %w", err)
	}
	return nodes, nil
}

func (r *TreeRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tree_nodes WHERE parent_id = $1;`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("TreeRepository.CountChildren - query failed: %w", err)
	}
	return count, nil
}

// CountSiblingNamed conta homônimos sob o mesmo pai, ignorando o próprio nó
// quando for um update.
func (r *TreeRepository) CountSiblingNamed(ctx context.Context, parentID int64, name string, excludeID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM tree_nodes
		WHERE parent_id = $1 AND name = $2 AND id <> $3;
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, parentID, name, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("TreeRepository.CountSiblingNamed - query failed: %w", err)
	}
	return count, nil
}

func (r *TreeRepository) Insert(ctx context.Context, node *entities.TreeNode) error {
	query := `
		INSERT INTO tree_nodes (parent_id, name, type, form_json, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		node.ParentID, node.Name, node.Type, node.FormJSON, node.Description,
	).Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		return fmt.Errorf("TreeRepository.Insert - insert failed: %w", err)
	}
	return nil
}

func (r *TreeRepository) Update(ctx context.Context, node *entities.TreeNode) error {
	query := `
		UPDATE tree_nodes SET
			parent_id = $2,
			name = $3,
			type = $4,
			form_json = $5,
			description = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at;
	`
	err := r.pool.QueryRow(ctx, query,
		node.ID, node.ParentID, node.Name, node.Type, node.FormJSON, node.Description,
	).Scan(&node.UpdatedAt)
	if err != nil {
		return fmt.Errorf("TreeRepository.Update - update failed: %w", err)
	}
	return nil
}

func (r *TreeRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM tree_nodes WHERE id = ANY($1);`, ids); err != nil {
		return fmt.Errorf("TreeRepository.DeleteByIDs - delete failed: %w", err)
	}
	return nil
}
