package ports

import (
	"context"

	"github.com/chainboard/job-board-api/internal/core/domain"
)

// LedgerReader is the read-only view of the external chain node. Lookup
// resolves a transaction and its receipt by hash.
//
// Errors: domain.ErrTxNotFound when the node has no record of the hash
// (pending or invalid); domain.ErrLedgerUnavailable when the node is
// unreachable or times out.
type LedgerReader interface {
	Lookup(ctx context.Context, txHash string) (*domain.LedgerTransaction, error)
}
