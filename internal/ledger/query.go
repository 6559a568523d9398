package ledger

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultPageLimit is the page size used when no cursor is given.
const DefaultPageLimit = 20

// Cursor identifies a position in a ledger listing.
type Cursor struct {
	Position int
	Limit    int
}

// CommissionLine is one entry of a commission summary.
type CommissionLine struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// CommissionSummary lists every transaction that earned a commission, in
// ledger order, with the grand total.
type CommissionSummary struct {
	Total decimal.Decimal
	Lines []CommissionLine
}

// List returns the ledger in creation order, oldest first.
func List(txs []Transaction) []Transaction {
	return txs
}

// Page returns one page of the ledger and the cursor of the next page, which
// is nil on the last page. A nil cursor starts from the beginning with
// DefaultPageLimit.
func Page(txs []Transaction, cursor *Cursor) ([]Transaction, *Cursor) {
	limit := DefaultPageLimit
	offset := 0
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		if cursor.Position > 0 {
			offset = cursor.Position
		}
	}

	if offset >= len(txs) {
		return nil, nil
	}

	rows := txs[offset:]
	var nextCursor *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &Cursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return rows, nextCursor
}

// SummarizeCommissions collects the transactions with a positive commission
// amount. The total is the sum of the listed amounts.
func SummarizeCommissions(txs []Transaction) CommissionSummary {
	summary := CommissionSummary{Total: decimal.Zero}

	for _, tx := range txs {
		if !tx.CommissionAmount.IsPositive() {
			continue
		}
		summary.Total = summary.Total.Add(tx.CommissionAmount)
		summary.Lines = append(summary.Lines, CommissionLine{
			Date:        tx.Timestamp,
			Amount:      tx.CommissionAmount,
			Description: Describe(tx),
		})
	}

	return summary
}

// Describe returns the one-line description used in commission summaries.
func Describe(tx Transaction) string {
	switch terms := tx.Terms.(type) {
	case ExchangeTerms:
		return tx.Kind.Label() + " " + terms.ForeignAmount.String() + " دولار بسعر " + terms.ExchangeRate.String()
	case GoodsTerms:
		return tx.Kind.Label() + " " + terms.Item + " بقيمة " + FormatAmount(tx.GrossAmount)
	default:
		return tx.Kind.Label()
	}
}

// FormatAmount rounds to whole units and groups thousands, e.g. 1,000,000.
func FormatAmount(d decimal.Decimal) string {
	return humanize.BigComma(d.Round(0).BigInt())
}

// UserTransactions returns the transactions of user for the queried kind.
// The user is matched on the seller field for purchases and on the buyer
// field otherwise. Sale and purchase queries also require the transaction
// kind to match; exchange queries do not filter on kind, so they also return
// sale and purchase rows bought by user. Whether they should is still an
// open product question.
func UserTransactions(txs []Transaction, kind Kind, user string) []Transaction {
	var matched []Transaction

	for _, tx := range txs {
		if roleField(kind, tx) != user {
			continue
		}

		switch kind {
		case KindExchange:
			matched = append(matched, tx)
		case KindSale, KindPurchase:
			if tx.Kind == kind {
				matched = append(matched, tx)
			}
		}
	}

	return matched
}

func roleField(kind Kind, tx Transaction) string {
	switch kind {
	case KindPurchase:
		return tx.Seller
	case KindSale, KindExchange:
		return tx.Buyer
	default:
		return ""
	}
}
