package sqlconfig

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

// memoryExecutor stands in for the ledgers table: the upsert stores
// ($1, $2) and the select returns the stored document for $1.
type memoryExecutor struct {
	documents  map[string][]byte
	statements []string
	args       [][]any
}

func newMemoryExecutor() *memoryExecutor {
	return &memoryExecutor{documents: map[string][]byte{}}
}

func (m *memoryExecutor) QueryContext(_ context.Context, query string, args ...any) (scan.Rows, error) {
	m.statements = append(m.statements, query)
	m.args = append(m.args, args)
	document, ok := m.documents[args[0].(string)]
	return &documentRows{document: document, pending: ok}, nil
}

func (m *memoryExecutor) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	m.statements = append(m.statements, query)
	m.args = append(m.args, args)
	m.documents[args[0].(string)] = []byte(args[1].(string))
	return driver.RowsAffected(1), nil
}

type documentRows struct {
	document []byte
	pending  bool
}

func (r *documentRows) Scan(dest ...any) error {
	*(dest[0].(*[]byte)) = r.document
	return nil
}

func (r *documentRows) Columns() ([]string, error) { return []string{columnDocument}, nil }

func (r *documentRows) Next() bool {
	next := r.pending
	r.pending = false
	return next
}

func (r *documentRows) Close() error { return nil }
func (r *documentRows) Err() error   { return nil }

type failingExecutor struct{}

func (failingExecutor) QueryContext(context.Context, string, ...any) (scan.Rows, error) {
	return nil, errors.New("connection refused")
}

func (failingExecutor) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errors.New("connection refused")
}

func newTestTable(exec bob.Executor) *LedgersTable {
	return &LedgersTable{exec: exec, now: func() time.Time { return testNow }}
}

func buildQuery(t *testing.T, q bob.Query) (string, []any) {
	t.Helper()
	query, args, err := bob.Build(context.Background(), q)
	require.NoError(t, err)
	return strings.Join(strings.Fields(query), " "), args
}

func TestSelectDocumentQuery(t *testing.T) {
	query, args := buildQuery(t, selectDocumentQuery("-100200"))

	assert.Contains(t, query, `SELECT "document" FROM "ledgers" WHERE`)
	assert.Contains(t, query, `"conversation_id" = $1`)
	assert.Equal(t, []any{"-100200"}, args)
}

func TestUpsertDocumentQuery(t *testing.T) {
	query, args := buildQuery(t, upsertDocumentQuery("-100200", []byte(`{"transactions":[]}`), testNow))

	assert.Contains(t, query, `INSERT INTO "ledgers"("conversation_id", "document", "updated_at")`)
	assert.Contains(t, query, `ON CONFLICT ("conversation_id") DO UPDATE SET "document" = EXCLUDED."document", "updated_at" = EXCLUDED."updated_at"`)
	assert.Equal(t, []any{"-100200", `{"transactions":[]}`, testNow}, args)
}

func TestLedgersTable_ReadMissing(t *testing.T) {
	table := newTestTable(newMemoryExecutor())

	_, err := table.Read(context.Background(), "-100200")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLedgersTable_WriteThenRead(t *testing.T) {
	exec := newMemoryExecutor()
	table := newTestTable(exec)
	ctx := context.Background()

	require.NoError(t, table.Write(ctx, "-100200", []byte(`{"transactions":[1]}`)))
	data, err := table.Read(ctx, "-100200")
	require.NoError(t, err)
	assert.Equal(t, `{"transactions":[1]}`, string(data))

	require.Len(t, exec.statements, 2)
	assert.Equal(t, testNow, exec.args[0][2])
}

func TestLedgersTable_WriteOverwrites(t *testing.T) {
	table := newTestTable(newMemoryExecutor())
	ctx := context.Background()

	require.NoError(t, table.Write(ctx, "-100200", []byte(`{"transactions":[1,2]}`)))
	require.NoError(t, table.Write(ctx, "-100200", []byte(`{"transactions":[]}`)))

	data, err := table.Read(ctx, "-100200")
	require.NoError(t, err)
	assert.Equal(t, `{"transactions":[]}`, string(data))
}

func TestLedgersTable_ExecutorError(t *testing.T) {
	table := newTestTable(failingExecutor{})
	ctx := context.Background()

	_, err := table.Read(ctx, "-100200")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, fs.ErrNotExist)

	assert.ErrorContains(t, table.Write(ctx, "-100200", []byte(`{}`)), "connection refused")
}
