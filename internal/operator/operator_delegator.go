package operator

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/carson-networks/deal-ledger/internal/operator/actions"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

const queueSize = 1000

// ErrOperatorStopped is returned by Process once Stop has been called.
var ErrOperatorStopped = errors.New("operator stopped")

// OperatorDelegator starts/stops Operators (workers) and routes items to
// them. Each worker owns a queue and a conversation always maps to the same
// worker, so changes to one ledger are applied one at a time while other
// conversations proceed in parallel.
type OperatorDelegator struct {
	storage  *storage.Storage
	queues   []chan ActionItem
	wg       sync.WaitGroup
	stopOnce sync.Once

	// mu guards stopped and keeps Stop from closing a queue mid-send.
	mu      sync.RWMutex
	stopped bool
}

func NewOperatorDelegator(s *storage.Storage, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	queues := make([]chan ActionItem, numWorkers)
	for i := range queues {
		queues[i] = make(chan ActionItem, queueSize)
	}
	return &OperatorDelegator{
		storage: s,
		queues:  queues,
	}
}

func (d *OperatorDelegator) Start() {
	for _, queue := range d.queues {
		d.wg.Add(1)
		op := NewOperator(d.storage, queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop closes the queues and waits for queued items to finish.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		for _, queue := range d.queues {
			close(queue)
		}
		d.mu.Unlock()
		d.wg.Wait()
	})
}

func (d *OperatorDelegator) queueFor(conversationID string) chan ActionItem {
	h := fnv.New32a()
	_, _ = h.Write([]byte(conversationID))
	return d.queues[h.Sum32()%uint32(len(d.queues))]
}

// Process runs action against the ledger of conversationID and waits for it
// to be committed or rolled back. Once queued, the item is always waited
// for: the worker checks ctx before loading, and a result that was already
// committed is reported as such even if ctx ends meanwhile.
func (d *OperatorDelegator) Process(ctx context.Context, conversationID string, action actions.IAction) error {
	if err := storage.ValidateConversationID(conversationID); err != nil {
		return err
	}

	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:            ctx,
		conversationID: conversationID,
		action:         action,
		enqueued:       time.Now(),
		response:       respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	resp := <-respCh
	return resp.err
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrOperatorStopped
	}

	select {
	case d.queueFor(item.conversationID) <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueDepth is the number of items waiting across all worker queues.
func (d *OperatorDelegator) QueueDepth() int {
	depth := 0
	for _, queue := range d.queues {
		depth += len(queue)
	}
	return depth
}
