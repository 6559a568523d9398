package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, StorageFile, cfg.StorageBackend)
	assert.Equal(t, "9446", cfg.HTTPPort)
	assert.Equal(t, ProviderOpenAI, cfg.ExtractionProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.ExtractionModel)
	assert.Equal(t, "ar", cfg.TranscriptionLanguage)
	assert.Equal(t, 4, cfg.OperatorWorkers)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestProcessEnvironmentVariables_LegacyNames(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("POSTGRES_PORT", "5432")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "sk-test", cfg.APIKey(ProviderOpenAI))
	assert.Equal(t, "5432", cfg.PostgresPort)
}

func TestProcessEnvironmentVariables_PrefixedWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LEDGER_LOG_LEVEL", "debug")
	t.Setenv("LEDGER_OPERATOR_WORKERS", "9")
	t.Setenv("LEDGER_TIME_ZONE", "UTC")
	t.Setenv("LEDGER_REQUEST_TIMEOUT", "45s")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9, cfg.OperatorWorkers)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestProcessEnvironmentVariables_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"storage_backend: gcs\ngcs_bucket: ledgers-bucket\nextraction_provider: gemini\nextraction_model: gemini-2.5-flash\n",
	), 0o600))
	t.Setenv("LEDGER_CONFIG_FILE", path)
	t.Setenv("LEDGER_GCS_PREFIX", "chats/")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, StorageGCS, cfg.StorageBackend)
	assert.Equal(t, "ledgers-bucket", cfg.GCSBucket)
	assert.Equal(t, "chats/", cfg.GCSPrefix)
	assert.Equal(t, ProviderGemini, cfg.ExtractionProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.ExtractionModel)
}

func TestProcessEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "LEDGER_STORAGE_BACKEND", "s3"},
		{"gcs without bucket", "LEDGER_STORAGE_BACKEND", "gcs"},
		{"unknown provider", "LEDGER_EXTRACTION_PROVIDER", "ollama"},
		{"no workers", "LEDGER_OPERATOR_WORKERS", "0"},
		{"bad time zone", "LEDGER_TIME_ZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := ProcessEnvironmentVariables()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := &Config{
		PostgresAddress:  "db",
		PostgresPort:     "5432",
		PostgresDB:       "ledger",
		PostgresUsername: "bot",
		PostgresPassword: "secret",
	}

	assert.Equal(t, "postgres://bot:secret@db:5432/ledger?sslmode=disable", cfg.PostgresURL())
}

func TestPostgresURL_EscapesCredentials(t *testing.T) {
	cfg := &Config{
		PostgresAddress:  "db",
		PostgresPort:     "5432",
		PostgresDB:       "ledger",
		PostgresUsername: "bot",
		PostgresPassword: "p@ss:w/rd?#",
	}

	raw := cfg.PostgresURL()
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	password, ok := parsed.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss:w/rd?#", password)
	assert.Equal(t, "bot", parsed.User.Username())
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/ledger", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}

func TestAPIKey(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-test", GeminiAPIKey: "gm-test"}

	assert.Equal(t, "sk-test", cfg.APIKey(ProviderOpenAI))
	assert.Equal(t, "gm-test", cfg.APIKey(ProviderGemini))
}

func TestProcessEnvironmentVariables_ProviderDefaultModels(t *testing.T) {
	t.Setenv("LEDGER_EXTRACTION_PROVIDER", "gemini")
	t.Setenv("LEDGER_TRANSCRIPTION_PROVIDER", "gemini")

	cfg, err := ProcessEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.ExtractionModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.TranscriptionModel)
}
