package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/render"
	"github.com/carson-networks/deal-ledger/internal/transcription"
)

// Telegram does not serve files larger than this to bots.
const maxVoiceBytes = 20 << 20

var errVoiceTooLarge = errors.New("voice message too large")

type fileLocator interface {
	GetFileDirectURL(fileID string) (string, error)
}

// Downloader fetches voice notes from the Telegram file endpoint.
type Downloader struct {
	Files  fileLocator
	Client *http.Client
}

func NewDownloader(files fileLocator) *Downloader {
	return &Downloader{
		Files:  files,
		Client: &http.Client{Timeout: time.Duration(60) * time.Second},
	}
}

func (d *Downloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := d.Files.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("Downloader.Download: locate file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Downloader.Download: %w", err)
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Downloader.Download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Downloader.Download: unexpected status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("Downloader.Download: read body: %w", err)
	}
	if len(audio) > maxVoiceBytes {
		return nil, errVoiceTooLarge
	}
	return audio, nil
}

// handleVoice transcribes a voice note, echoes the transcript and then
// records it like a text message.
func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.reply(msg, render.VoiceProcessing); err != nil {
		return err
	}

	stopDownload := logging.StartTiming(ctx, "downloadMs")
	audio, err := b.Downloader.Download(ctx, msg.Voice.FileID)
	stopDownload()
	if err != nil {
		return errors.Join(err, b.reply(msg, render.VoiceFailed))
	}
	logging.AddData(ctx, "voiceBytes", len(audio))

	mimeType := msg.Voice.MimeType
	if mimeType == "" {
		mimeType = transcription.MIMETypeOgg
	}

	stopTranscribe := logging.StartTiming(ctx, "transcribeMs")
	text, err := b.Transcriber.Transcribe(ctx, audio, mimeType)
	stopTranscribe()
	if err != nil {
		return errors.Join(err, b.reply(msg, render.VoiceFailed))
	}

	if err := b.reply(msg, render.Transcript(text)); err != nil {
		return err
	}
	return b.handleText(ctx, msg, text)
}
