package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/deal-ledger/api"
	"github.com/carson-networks/deal-ledger/internal/bot"
	"github.com/carson-networks/deal-ledger/internal/config"
	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/operator"
	"github.com/carson-networks/deal-ledger/internal/service"
	"github.com/carson-networks/deal-ledger/internal/storage"
	"github.com/carson-networks/deal-ledger/internal/transcription"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("deal-ledger starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledgerStorage, err := storage.NewStorage(ctx, envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer ledgerStorage.Close()

	delegator := operator.NewOperatorDelegator(ledgerStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	extractor, err := extraction.NewExtractor(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("extraction.NewExtractor")
		return
	}

	svc := service.NewService(ledgerStorage, delegator, extractor)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		httpRest := api.Rest{
			Logger:         logger,
			Port:           envConfig.HTTPPort,
			Service:        svc,
			Operator:       delegator,
			RequestTimeout: envConfig.RequestTimeout,
		}
		httpRest.Serve(ctx)
	}()

	if envConfig.TelegramBotToken == "" {
		logger.Warn("Bot.disabled, no telegram_bot_token configured")
	} else {
		transcriber, err := transcription.NewTranscriber(ctx, envConfig)
		if err != nil {
			logger.WithError(err).Fatal("transcription.NewTranscriber")
			return
		}

		botAPI, err := tgbotapi.NewBotAPI(envConfig.TelegramBotToken)
		if err != nil {
			logger.WithError(err).Fatal("tgbotapi.NewBotAPI")
			return
		}
		logger.WithField("username", botAPI.Self.UserName).Info("Bot.authorized")

		telegramBot := bot.NewBot(logger, botAPI, svc.Ledger, transcriber, envConfig.RequestTimeout)
		wg.Add(1)
		go func() {
			defer wg.Done()
			telegramBot.Run(ctx)
		}()
	}

	wg.Wait()
	logger.Info("deal-ledger stopped")
}
