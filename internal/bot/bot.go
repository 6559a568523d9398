package bot

import (
	"context"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/service"
	"github.com/carson-networks/deal-ledger/internal/transcription"
)

const pollTimeoutSeconds = 60

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type ledgerService interface {
	RecordText(ctx context.Context, conversationID, text string) (service.RecordedTransaction, error)
	Transactions(ctx context.Context, conversationID string) ([]ledger.Transaction, error)
	CommissionSummary(ctx context.Context, conversationID string) (ledger.CommissionSummary, error)
	UserTransactions(ctx context.Context, conversationID string, kind ledger.Kind, user string) ([]ledger.Transaction, error)
	Clear(ctx context.Context, conversationID string) (int, error)
}

// Bot answers Telegram updates. Every chat is its own conversation ledger.
type Bot struct {
	Logger         *logrus.Logger
	API            botAPI
	Ledger         ledgerService
	Transcriber    transcription.Transcriber
	Downloader     *Downloader
	RequestTimeout time.Duration
}

func NewBot(logger *logrus.Logger, api botAPI, ledgerSvc ledgerService, transcriber transcription.Transcriber, requestTimeout time.Duration) *Bot {
	return &Bot{
		Logger:         logger,
		API:            api,
		Ledger:         ledgerSvc,
		Transcriber:    transcriber,
		Downloader:     NewDownloader(api),
		RequestTimeout: requestTimeout,
	}
}

// Run long-polls for updates until ctx is canceled. Each update is handled
// in its own goroutine; Run waits for them before returning.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.API.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	b.Logger.Info("Bot.Run.polling")
	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			b.Logger.Info("Bot.Run.stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate processes one update with its own LogData and deadline.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	loggingName := handlerName(msg)
	if loggingName == "" {
		return
	}

	logData := logging.NewRequestLogData(b.Logger)
	logData.AddData("conversationID", conversationID(msg))
	logData.AddData("updateID", update.UpdateID)
	ctx = logging.WithLogData(ctx, logData)
	if b.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.RequestTimeout)
		defer cancel()
	}

	b.Logger.Infof("Bot.%v.Start", loggingName)
	endTimer := logData.AddTiming("duration")
	err := b.dispatch(ctx, msg)
	endTimer()
	if err != nil {
		logData.Log().WithError(err).Errorf("Bot.%v.Error", loggingName)
		return
	}

	logData.Log().Infof("Bot.%v.Complete", loggingName)
}

// handlerName names the handler msg is routed to, or "" when it is ignored.
func handlerName(msg *tgbotapi.Message) string {
	switch {
	case msg.IsCommand():
		switch msg.Command() {
		case commandStart, commandRecords, commandCommission, commandUser, commandClear:
			return "Command." + msg.Command()
		default:
			return ""
		}
	case msg.Voice != nil:
		return "Voice"
	case msg.Text != "":
		return "Text"
	default:
		return ""
	}
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) error {
	switch {
	case msg.IsCommand():
		return b.handleCommand(ctx, msg)
	case msg.Voice != nil:
		return b.handleVoice(ctx, msg)
	default:
		return b.handleText(ctx, msg, msg.Text)
	}
}

func conversationID(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.Chat.ID, 10)
}

// reply sends texts to the chat of msg in order, stopping at the first
// failure.
func (b *Bot) reply(msg *tgbotapi.Message, texts ...string) error {
	for _, text := range texts {
		if _, err := b.API.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
			return err
		}
	}
	return nil
}
