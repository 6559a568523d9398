package actions

import (
	"context"

	"github.com/carson-networks/deal-ledger/internal/storage"
)

// ClearLedger drops every transaction of the conversation. Cleared reports
// how many there were.
type ClearLedger struct {
	Cleared int
	IAction
}

func (c *ClearLedger) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Cleared = len(writer.Transactions)
	writer.Reset()
	return nil
}
