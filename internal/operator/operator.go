package operator

import (
	"context"
	"time"

	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/operator/actions"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

// Operator owns one queue and applies its items one at a time, so a ledger
// routed to it is never read and written by two actions at once.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run exits once the queue is closed and drained.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.apply(item)}
	}
}

// apply loads the conversation ledger, runs the action and commits. Nothing
// is written when the action fails or the caller has already given up.
func (o *Operator) apply(item ActionItem) error {
	logging.AddData(item.ctx, "queueWaitMs", time.Since(item.enqueued).Milliseconds())
	if err := item.ctx.Err(); err != nil {
		return err
	}

	stop := logging.StartTiming(item.ctx, "applyMs")
	defer stop()

	writer, err := o.storage.Write(item.ctx, item.conversationID)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		_ = writer.Rollback()
		return err
	}
	return writer.Commit(item.ctx)
}

// ActionItem is one queued action for one conversation ledger.
type ActionItem struct {
	ctx            context.Context
	conversationID string
	action         actions.IAction
	enqueued       time.Time
	response       chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
