package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
)

var testNow = time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)

func mustNormalize(t *testing.T, fields ledger.Fields) ledger.Transaction {
	t.Helper()
	tx, err := ledger.Normalize(fields, testNow)
	require.NoError(t, err)
	return tx
}

func saleFields() ledger.Fields {
	return ledger.Fields{
		ledger.FieldKind:           "بيع",
		ledger.FieldSeller:         "أحمد",
		ledger.FieldBuyer:          "محمد",
		ledger.FieldItem:           "زيت",
		ledger.FieldGrossAmount:    100000,
		ledger.FieldCommissionRate: 0.02,
	}
}

func exchangeFields() ledger.Fields {
	return ledger.Fields{
		ledger.FieldKind:           "صرف",
		ledger.FieldSeller:         "أحمد",
		ledger.FieldForeignAmount:  100,
		ledger.FieldExchangeRate:   10000,
		ledger.FieldCommissionRate: 0.03,
	}
}

// -- Chunk --

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		entries  []string
		limit    int
		expected []string
	}{
		{name: "fits", header: "h:", entries: []string{"aa", "bb"}, limit: 10, expected: []string{"h:aabb"}},
		{name: "splits", header: "h:", entries: []string{"aaaa", "bbbb", "cc"}, limit: 7, expected: []string{"h:aaaa", "bbbbcc"}},
		{name: "oversized entry", header: "", entries: []string{"aaaaaaaa", "b"}, limit: 4, expected: []string{"aaaaaaaa", "b"}},
		{name: "header only", header: "h:", entries: nil, limit: 4, expected: []string{"h:"}},
		{name: "nothing", header: "", entries: nil, limit: 4, expected: nil},
		{name: "counts characters", header: "", entries: []string{"زيت", "سكر"}, limit: 6, expected: []string{"زيتسكر"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chunk(tt.header, tt.entries, tt.limit))
		})
	}
}

// -- Confirmation --

func TestConfirmation_Sale(t *testing.T) {
	expected := "✅ تم تسجيل معاملة بيع:\n" +
		"━━━━━━━━━━━━━━\n" +
		"📅 التاريخ: 2024-03-01 10:15\n" +
		"👤 البائع: أحمد\n" +
		"👥 المشتري: محمد\n" +
		"📦 المادة: زيت\n" +
		"💰 المبلغ: 100,000 ل.س\n" +
		"📉 العمولة: 2.0% (2,000 ل.س)\n" +
		"💵 الصافي: 98,000 ل.س"

	assert.Equal(t, expected, Confirmation(mustNormalize(t, saleFields())))
}

func TestConfirmation_Exchange(t *testing.T) {
	text := Confirmation(mustNormalize(t, exchangeFields()))

	assert.True(t, strings.HasPrefix(text, "✅ تم تسجيل معاملة صرف:"))
	assert.Contains(t, text, "👥 المشتري: غير معروف")
	assert.Contains(t, text, "💵 مبلغ الدولار: 100 $")
	assert.Contains(t, text, "💹 سعر الدولار: 10,000 ل.س")
	assert.Contains(t, text, "💰 المبلغ الكلي: 1,000,000 ل.س")
	assert.Contains(t, text, "📉 العمولة: 3.0% (30,000 ل.س)")
	assert.Contains(t, text, "💵 الصافي: 970,000 ل.س")
}

// -- Records --

func TestRecords_Empty(t *testing.T) {
	assert.Equal(t, []string{NoTransactions}, Records(nil, 1))
}

func TestRecords_NumbersEntries(t *testing.T) {
	chunks := Records([]ledger.Transaction{mustNormalize(t, saleFields()), mustNormalize(t, exchangeFields())}, 1)

	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "📋 سجل المعاملات:\n\nمعاملة 1:\n"))
	assert.Contains(t, chunks[0], "معاملة 2:\n📅 2024-03-01 10:15\n🔸 صرف\n")
	assert.Contains(t, chunks[0], "📦 زيت\n💰 المبلغ: 100,000 ل.س\n📉 العمولة: 2.0%\n")
}

func TestRecords_LongLedgerIsChunked(t *testing.T) {
	txs := make([]ledger.Transaction, 60)
	for i := range txs {
		txs[i] = mustNormalize(t, saleFields())
	}

	chunks := Records(txs, 1)

	require.Greater(t, len(chunks), 1)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), MaxMessageLength)
		total += strings.Count(chunk, "معاملة ")
	}
	assert.Equal(t, 60, total)
	assert.Contains(t, chunks[len(chunks)-1], "معاملة 60:")
}

// -- Commissions --

func TestCommissions(t *testing.T) {
	summary := ledger.SummarizeCommissions([]ledger.Transaction{mustNormalize(t, saleFields()), mustNormalize(t, exchangeFields())})

	chunks := Commissions(summary)

	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "💰 سجل العمولات:\n━━━━━━━━━━━━━━\nالمجموع الكلي: 32,000 ل.س\n"))
	assert.Contains(t, chunks[0], "💵 العمولة: 2,000 ل.س\n📝 بيع زيت بقيمة 100,000\n")
	assert.Contains(t, chunks[0], "📝 صرف 100 دولار بسعر 10000\n")
}

func TestCommissions_Empty(t *testing.T) {
	assert.Equal(t, []string{NoCommissions}, Commissions(ledger.CommissionSummary{Total: decimal.Zero}))
}

func TestCommissions_LongSummaryIsChunked(t *testing.T) {
	txs := make([]ledger.Transaction, 100)
	for i := range txs {
		txs[i] = mustNormalize(t, saleFields())
	}

	chunks := Commissions(ledger.SummarizeCommissions(txs))

	require.Greater(t, len(chunks), 1)
	assert.Contains(t, chunks[0], "المجموع الكلي: 200,000 ل.س")
	lines := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), MaxMessageLength)
		lines += strings.Count(chunk, "💵 العمولة: ")
	}
	assert.Equal(t, 100, lines)
}

// -- UserTransactions --

func TestUserTransactions(t *testing.T) {
	chunks := UserTransactions(ledger.KindSale, "محمد", []ledger.Transaction{mustNormalize(t, saleFields())})

	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "📋 سجل معاملات بيع لـ محمد:\n\n📅 2024-03-01 10:15\n📦 زيت\n"))
	assert.Contains(t, chunks[0], "💵 الصافي: 98,000 ل.س")
}

func TestUserTransactions_Empty(t *testing.T) {
	assert.Equal(t, []string{"لا توجد معاملات صرف لـ سامر"}, UserTransactions(ledger.KindExchange, "سامر", nil))
}

// -- ErrorMessage --

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: fmt.Errorf("normalize: %w", ledger.ErrUnknownKind), expected: UnknownKind},
		{err: ledger.ErrIncompleteExchangeData, expected: IncompleteExchange},
		{err: ledger.ErrIncompleteTransactionData, expected: IncompleteGoods},
		{err: fmt.Errorf("%w: timeout", extraction.ErrExtractionFailure), expected: ExtractionFailed},
		{err: errors.New("disk full"), expected: InternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ErrorMessage(tt.err), tt.err.Error())
	}
}
