package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/deal-ledger/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(1) + "%"
}

func money(d decimal.Decimal) string {
	return ledger.FormatAmount(d) + currency
}

// Confirmation is the reply sent once a transaction has been recorded.
func Confirmation(tx ledger.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ تم تسجيل معاملة %s:\n%s\n", tx.Kind.Label(), separator)
	fmt.Fprintf(&b, "📅 التاريخ: %s\n", tx.Date())
	fmt.Fprintf(&b, "👤 البائع: %s\n", tx.Seller)
	fmt.Fprintf(&b, "👥 المشتري: %s\n", tx.Buyer)

	switch terms := tx.Terms.(type) {
	case ledger.ExchangeTerms:
		fmt.Fprintf(&b, "💵 مبلغ الدولار: %s $\n", ledger.FormatAmount(terms.ForeignAmount))
		fmt.Fprintf(&b, "💹 سعر الدولار: %s\n", money(terms.ExchangeRate))
		fmt.Fprintf(&b, "💰 المبلغ الكلي: %s\n", money(tx.GrossAmount))
	case ledger.GoodsTerms:
		fmt.Fprintf(&b, "📦 المادة: %s\n", terms.Item)
		fmt.Fprintf(&b, "💰 المبلغ: %s\n", money(tx.GrossAmount))
	}

	fmt.Fprintf(&b, "📉 العمولة: %s (%s)\n", percent(tx.CommissionRate), money(tx.CommissionAmount))
	fmt.Fprintf(&b, "💵 الصافي: %s", money(tx.NetAmount))
	return b.String()
}

func recordEntry(position int, tx ledger.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "معاملة %d:\n", position)
	fmt.Fprintf(&b, "📅 %s\n", tx.Date())
	fmt.Fprintf(&b, "🔸 %s\n", tx.Kind.Label())
	fmt.Fprintf(&b, "👤 البائع: %s\n", tx.Seller)
	fmt.Fprintf(&b, "👥 المشتري: %s\n", tx.Buyer)

	switch terms := tx.Terms.(type) {
	case ledger.ExchangeTerms:
		fmt.Fprintf(&b, "💵 مبلغ الدولار: %s $\n", ledger.FormatAmount(terms.ForeignAmount))
		fmt.Fprintf(&b, "💹 سعر الدولار: %s\n", money(terms.ExchangeRate))
		fmt.Fprintf(&b, "💰 المبلغ الكلي: %s\n", money(tx.GrossAmount))
		fmt.Fprintf(&b, "📉 العمولة: %s (%s)\n", percent(tx.CommissionRate), money(tx.CommissionAmount))
	case ledger.GoodsTerms:
		fmt.Fprintf(&b, "📦 %s\n", terms.Item)
		fmt.Fprintf(&b, "💰 المبلغ: %s\n", money(tx.GrossAmount))
		fmt.Fprintf(&b, "📉 العمولة: %s\n", percent(tx.CommissionRate))
	}

	fmt.Fprintf(&b, "💵 الصافي: %s\n%s\n", money(tx.NetAmount), separator)
	return b.String()
}

// Records renders the whole ledger as one or more messages. first is the
// 1-based position of txs[0] in the ledger.
func Records(txs []ledger.Transaction, first int) []string {
	if len(txs) == 0 {
		return []string{NoTransactions}
	}

	entries := make([]string, len(txs))
	for i, tx := range txs {
		entries[i] = recordEntry(first+i, tx)
	}
	return Chunk(recordsHeader, entries, MaxMessageLength)
}

func commissionEntry(line ledger.CommissionLine) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n📅 %s\n", line.Date.Format(ledger.TimestampLayout))
	fmt.Fprintf(&b, "💵 العمولة: %s\n", money(line.Amount))
	fmt.Fprintf(&b, "📝 %s\n%s", line.Description, separator)
	return b.String()
}

// Commissions renders a commission summary as one or more messages. The
// total is part of the first message.
func Commissions(summary ledger.CommissionSummary) []string {
	if len(summary.Lines) == 0 {
		return []string{NoCommissions}
	}

	header := fmt.Sprintf("💰 سجل العمولات:\n%s\nالمجموع الكلي: %s\n\nتفاصيل العمولات:\n",
		separator, money(summary.Total))
	entries := make([]string, len(summary.Lines))
	for i, line := range summary.Lines {
		entries[i] = commissionEntry(line)
	}
	return Chunk(header, entries, MaxMessageLength)
}

func userEntry(tx ledger.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 %s\n", tx.Date())
	switch terms := tx.Terms.(type) {
	case ledger.ExchangeTerms:
		fmt.Fprintf(&b, "💵 مبلغ الدولار: %s $\n", ledger.FormatAmount(terms.ForeignAmount))
		fmt.Fprintf(&b, "💹 سعر الدولار: %s\n", money(terms.ExchangeRate))
		fmt.Fprintf(&b, "💰 المبلغ الكلي: %s", money(tx.GrossAmount))
	case ledger.GoodsTerms:
		fmt.Fprintf(&b, "📦 %s\n", terms.Item)
		fmt.Fprintf(&b, "💰 المبلغ: %s", money(tx.GrossAmount))
	}
	fmt.Fprintf(&b, "\n💵 الصافي: %s\n%s", money(tx.NetAmount), separator)
	return b.String()
}

// UserTransactions renders the transactions of one user for one kind.
func UserTransactions(kind ledger.Kind, user string, txs []ledger.Transaction) []string {
	if len(txs) == 0 {
		return []string{fmt.Sprintf("لا توجد معاملات %s لـ %s", kind.Label(), user)}
	}

	entries := make([]string, len(txs))
	for i, tx := range txs {
		entries[i] = userEntry(tx)
	}
	header := fmt.Sprintf("📋 سجل معاملات %s لـ %s:\n\n", kind.Label(), user)
	return Chunk(header, entries, MaxMessageLength)
}
