package actions

import (
	"context"

	"github.com/carson-networks/deal-ledger/internal/storage"
)

// IAction is a change to one conversation ledger. The operator commits the
// writer when Perform succeeds and rolls it back otherwise.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
