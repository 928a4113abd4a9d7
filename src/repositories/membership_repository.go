package repositories

import (
	"context"
	"fmt"
	"umsgraph/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// ParentsOf retorna as arestas em ordem de inserção, para resolução
// determinística.
func (r *MembershipRepository) ParentsOf(ctx context.Context, nodeID int64) ([]entities.MembershipEdge, error) {
	query := `
		SELECT id, node_id, parent_id, created_at
		FROM membership_edges
		WHERE node_id = $1
		ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, nodeID)
	if err != nil {
		return nil, fmt.Errorf("MembershipRepository.ParentsOf - query failed: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

func (r *MembershipRepository) ChildrenOf(ctx context.Context, parentID int64) ([]entities.MembershipEdge, error) {
	query := `
		SELECT id, node_id, parent_id, created_at
		FROM membership_edges
		WHERE parent_id = $1
		ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("MembershipRepository.ChildrenOf - query failed: %w", err)
	}
	defer rows.Close()

	return scanEdges(rows)
}

func scanEdges(rows pgx.Rows) ([]entities.MembershipEdge, error) {
	var edges []entities.MembershipEdge
	for rows.Next() {
		var edge entities.MembershipEdge
		if err := rows.Scan(&edge.ID, &edge.NodeID, &edge.ParentID, &edge.CreatedAt); err != nil {
			return nil, fmt.Errorf("MembershipRepository - failed to scan edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MembershipRepository - error iterating rows: %w", err)
	}
	return edges, nil
}

func (r *MembershipRepository) Exists(ctx context.Context, nodeID, parentID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM membership_edges WHERE node_id = $1 AND parent_id = $2);`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, nodeID, parentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("MembershipRepository.Exists - query failed: %w", err)
	}
	return exists, nil
}

func (r *MembershipRepository) Insert(ctx context.Context, edge *entities.MembershipEdge) error {
	query := `
		INSERT INTO membership_edges (node_id, parent_id)
		VALUES ($1, $2)
		RETURNING id, created_at;
	`
	err := r.pool.QueryRow(ctx, query, edge.NodeID, edge.ParentID).
		Scan(&edge.ID, &edge.CreatedAt)
	if err != nil {
		return fmt.Errorf("MembershipRepository.Insert - insert failed: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, nodeID, parentID int64) error {
	query := `DELETE FROM membership_edges WHERE node_id = $1 AND parent_id = $2;`
	if _, err := r.pool.Exec(ctx, query, nodeID, parentID); err != nil {
		return fmt.Errorf("MembershipRepository.Delete - delete failed: %w", err)
	}
	return nil
}
