package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const (
	ledgersTable         = "ledgers"
	columnConversationID = "conversation_id"
	columnDocument       = "document"
	columnUpdatedAt      = "updated_at"
)

// LedgersTable keeps one JSONB ledger document per conversation.
type LedgersTable struct {
	db   *sql.DB
	exec bob.Executor
	now  func() time.Time
}

func NewLedgersTable(db *sql.DB) *LedgersTable {
	return &LedgersTable{
		db:   db,
		exec: bob.NewDB(db),
		now:  time.Now,
	}
}

// Read returns the stored document; a missing row yields an error wrapping
// fs.ErrNotExist.
func (t *LedgersTable) Read(ctx context.Context, conversationID string) ([]byte, error) {
	document, err := bob.One(ctx, t.exec, selectDocumentQuery(conversationID), scan.SingleColumnMapper[[]byte])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", conversationID, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("LedgersTable.Read: %w", err)
	}
	return document, nil
}

// Write upserts the document of a conversation.
func (t *LedgersTable) Write(ctx context.Context, conversationID string, data []byte) error {
	query := upsertDocumentQuery(conversationID, data, t.now().UTC())
	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return fmt.Errorf("LedgersTable.Write: %w", err)
	}
	return nil
}

func selectDocumentQuery(conversationID string) bob.Query {
	return psql.Select(
		sm.Columns(psql.Quote(columnDocument)),
		sm.From(psql.Quote(ledgersTable)),
		sm.Where(psql.Quote(columnConversationID).EQ(psql.Arg(conversationID))),
	)
}

func upsertDocumentQuery(conversationID string, data []byte, updatedAt time.Time) bob.Query {
	return psql.Insert(
		im.Into(psql.Quote(ledgersTable), columnConversationID, columnDocument, columnUpdatedAt),
		im.Values(psql.Arg(conversationID, string(data), updatedAt)),
		im.OnConflict(psql.Quote(columnConversationID)).DoUpdate(
			im.SetExcluded(columnDocument, columnUpdatedAt),
		),
	)
}

func (t *LedgersTable) Close() error {
	return t.db.Close()
}
