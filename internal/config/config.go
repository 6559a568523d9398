package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "LEDGER_"
	envConfigFile = "LEDGER_CONFIG_FILE"
)

// Storage backends.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageGCS      = "gcs"
)

// Model providers used for extraction and transcription.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	LogLevel string
	HTTPPort string
	Location *time.Location

	StorageBackend string
	DataDir        string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	GCSBucket          string
	GCSPrefix          string
	GCSCredentialsFile string
	GCSEndpoint        string

	TelegramBotToken string
	OpenAIAPIKey     string
	GeminiAPIKey     string

	ExtractionProvider    string
	ExtractionModel       string
	TranscriptionProvider string
	TranscriptionModel    string
	TranscriptionLanguage string

	OperatorWorkers int
	RequestTimeout  time.Duration
}

// In all cases the default behavior should be a local run with file storage.
var defaults = map[string]interface{}{
	"log_level":              "info",
	"http_port":              "9446",
	"time_zone":              "Local",
	"storage_backend":        StorageFile,
	"data_dir":               ".",
	"postgres_address":       "localhost",
	"postgres_port":          "5433",
	"postgres_db":            "postgres",
	"postgres_username":      "postgres",
	"postgres_password":      "testpassword",
	"gcs_bucket":             "",
	"gcs_prefix":             "ledgers/",
	"gcs_credentials_file":   "",
	"gcs_endpoint":           "",
	"extraction_provider":    ProviderOpenAI,
	"extraction_model":       "",
	"transcription_provider": ProviderOpenAI,
	"transcription_model":    "",
	"transcription_language": "ar",
	"operator_workers":       4,
	"request_timeout":        "2m",
}

// Models used when none is configured for the selected provider.
var (
	defaultExtractionModels = map[string]string{
		ProviderOpenAI: "gpt-4o-mini",
		ProviderGemini: "gemini-2.5-flash",
	}
	defaultTranscriptionModels = map[string]string{
		ProviderOpenAI: "whisper-1",
		ProviderGemini: "gemini-2.5-flash",
	}
)

// Unprefixed variable names kept from earlier deployments of the bot.
var legacyEnv = map[string]string{
	"TELEGRAM_BOT_TOKEN": "telegram_bot_token",
	"OPENAI_API_KEY":     "openai_api_key",
	"GEMINI_API_KEY":     "gemini_api_key",
	"LOG_LEVEL":          "log_level",
	"POSTGRES_ADDRESS":   "postgres_address",
	"POSTGRES_PORT":      "postgres_port",
	"POSTGRES_DB":        "postgres_db",
	"POSTGRES_USERNAME":  "postgres_username",
	"POSTGRES_PASSWORD":  "postgres_password",
}

// ProcessEnvironmentVariables builds the configuration from defaults, an
// optional YAML file named by LEDGER_CONFIG_FILE, the legacy variable names
// and finally LEDGER_-prefixed variables, later sources winning.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load legacy environment: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if s == envConfigFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	location, err := time.LoadLocation(k.String("time_zone"))
	if err != nil {
		return nil, fmt.Errorf("config: time_zone: %w", err)
	}

	cfg := Config{
		LogLevel:              k.String("log_level"),
		HTTPPort:              k.String("http_port"),
		Location:              location,
		StorageBackend:        strings.ToLower(k.String("storage_backend")),
		DataDir:               k.String("data_dir"),
		PostgresAddress:       k.String("postgres_address"),
		PostgresPort:          k.String("postgres_port"),
		PostgresDB:            k.String("postgres_db"),
		PostgresUsername:      k.String("postgres_username"),
		PostgresPassword:      k.String("postgres_password"),
		GCSBucket:             k.String("gcs_bucket"),
		GCSPrefix:             k.String("gcs_prefix"),
		GCSCredentialsFile:    k.String("gcs_credentials_file"),
		GCSEndpoint:           k.String("gcs_endpoint"),
		TelegramBotToken:      k.String("telegram_bot_token"),
		OpenAIAPIKey:          k.String("openai_api_key"),
		GeminiAPIKey:          k.String("gemini_api_key"),
		ExtractionProvider:    strings.ToLower(k.String("extraction_provider")),
		ExtractionModel:       k.String("extraction_model"),
		TranscriptionProvider: strings.ToLower(k.String("transcription_provider")),
		TranscriptionModel:    k.String("transcription_model"),
		TranscriptionLanguage: k.String("transcription_language"),
		OperatorWorkers:       k.Int("operator_workers"),
		RequestTimeout:        k.Duration("request_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ExtractionModel == "" {
		cfg.ExtractionModel = defaultExtractionModels[cfg.ExtractionProvider]
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = defaultTranscriptionModels[cfg.TranscriptionProvider]
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageFile, StoragePostgres:
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("config: gcs_bucket is required for the gcs storage backend")
		}
	default:
		return fmt.Errorf("config: unknown storage_backend %q", c.StorageBackend)
	}

	for name, provider := range map[string]string{
		"extraction_provider":    c.ExtractionProvider,
		"transcription_provider": c.TranscriptionProvider,
	} {
		if provider != ProviderOpenAI && provider != ProviderGemini {
			return fmt.Errorf("config: unknown %s %q", name, provider)
		}
	}

	if c.OperatorWorkers < 1 {
		return fmt.Errorf("config: operator_workers must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive")
	}

	return nil
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresAddress, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: url.Values{"sslmode": {"disable"}}.Encode(),
	}
	return u.String()
}

// APIKey returns the key configured for a model provider.
func (c *Config) APIKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.OpenAIAPIKey
	}
}
