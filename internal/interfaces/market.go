package interfaces

import (
	"context"

	"github.com/syntoo/nepsebot/internal/models"
)

// SymbolResolver resolves a ticker symbol into a merged StockRecord.
// Returns ErrInvalidSymbol, ErrSymbolNotFound or ErrComputation.
type SymbolResolver interface {
	Resolve(ctx context.Context, symbol string) (*models.StockRecord, error)
}

// IndexReader extracts the aggregate market index from the live-trading
// page. Returns ErrSnapshotUnavailable when the summary block is missing
// or unparseable.
type IndexReader interface {
	ReadSnapshot(ctx context.Context) (*models.IndexSnapshot, error)
}
