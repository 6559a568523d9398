package actions

import (
	"context"
	"time"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

// RecordTransaction normalizes Fields and appends the result to the ledger.
// Transaction and its 1-based Position are set once Perform succeeds.
type RecordTransaction struct {
	Fields ledger.Fields
	Now    time.Time

	Transaction ledger.Transaction
	Position    int
	IAction
}

func (r *RecordTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	tx, err := ledger.Normalize(r.Fields, r.Now)
	if err != nil {
		return err
	}

	writer.Append(tx)
	r.Transaction = tx
	r.Position = len(writer.Transactions)
	return nil
}
