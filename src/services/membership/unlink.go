package membership

import (
	"context"
	"fmt"
)

// Unlink remove a aresta nó -> pai; remover aresta inexistente é no-op.
func (s *MembershipService) Unlink(ctx context.Context, nodeID, parentID int64) error {
	if err := s.membershipStore.Delete(ctx, nodeID, parentID); err != nil {
		return fmt.Errorf("MembershipService.Unlink - failed to delete edge: %w", err)
	}
	return nil
}
