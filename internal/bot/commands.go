package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/render"
)

const (
	commandStart      = "start"
	commandRecords    = "records"
	commandCommission = "commission"
	commandUser       = "user"
	commandClear      = "clear"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	id := conversationID(msg)

	switch msg.Command() {
	case commandStart:
		return b.reply(msg, render.Welcome)

	case commandRecords:
		txs, err := b.Ledger.Transactions(ctx, id)
		if err != nil {
			return errors.Join(err, b.reply(msg, render.ErrorMessage(err)))
		}
		logging.AddData(ctx, "transactionCount", len(txs))
		if len(txs) == 0 {
			return b.reply(msg, render.NoTransactions)
		}
		return b.reply(msg, render.Records(txs, 1)...)

	case commandCommission:
		summary, err := b.Ledger.CommissionSummary(ctx, id)
		if err != nil {
			return errors.Join(err, b.reply(msg, render.ErrorMessage(err)))
		}
		return b.reply(msg, render.Commissions(summary)...)

	case commandUser:
		return b.handleUser(ctx, msg)

	case commandClear:
		cleared, err := b.Ledger.Clear(ctx, id)
		if err != nil {
			return errors.Join(err, b.reply(msg, render.ErrorMessage(err)))
		}
		logging.AddData(ctx, "cleared", cleared)
		return b.reply(msg, render.Cleared)
	}

	return nil
}

// handleUser answers "/user <kind> <name...>". The name may contain spaces.
func (b *Bot) handleUser(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		return b.reply(msg, render.UserUsage)
	}

	kind, err := ledger.ParseKind(args[0])
	if err != nil {
		return b.reply(msg, render.UserUnknownKind)
	}
	user := strings.Join(args[1:], " ")
	logging.AddData(ctx, "kind", kind.String())

	txs, err := b.Ledger.UserTransactions(ctx, conversationID(msg), kind, user)
	if err != nil {
		return errors.Join(err, b.reply(msg, render.ErrorMessage(err)))
	}
	return b.reply(msg, render.UserTransactions(kind, user, txs)...)
}

// handleText records the deal described by text. Rejected deals are answered
// with the reason and are not logged as failures.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, text string) error {
	recorded, err := b.Ledger.RecordText(ctx, conversationID(msg), text)
	if err != nil {
		if isRejection(err) {
			logging.AddData(ctx, "rejected", err.Error())
			return b.reply(msg, render.ErrorMessage(err))
		}
		return errors.Join(err, b.reply(msg, render.ErrorMessage(err)))
	}

	logging.AddData(ctx, "position", recorded.Position)
	return b.reply(msg, render.Confirmation(recorded.Transaction))
}

func isRejection(err error) bool {
	return errors.Is(err, ledger.ErrUnknownKind) ||
		errors.Is(err, ledger.ErrIncompleteExchangeData) ||
		errors.Is(err, ledger.ErrIncompleteTransactionData)
}
