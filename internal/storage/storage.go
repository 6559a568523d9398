package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	gcs "cloud.google.com/go/storage"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/carson-networks/deal-ledger/internal/config"
	"github.com/carson-networks/deal-ledger/internal/storage/file"
	"github.com/carson-networks/deal-ledger/internal/storage/gcsstore"
	"github.com/carson-networks/deal-ledger/internal/storage/sqlconfig"
)

// ErrInvalidConversationID is returned for ids that cannot name a ledger.
var ErrInvalidConversationID = errors.New("invalid conversation id")

var conversationIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// DocumentStore persists one JSON ledger document per conversation.
// Implementations report a missing document with an error wrapping
// fs.ErrNotExist.
//
//go:generate mockery --name DocumentStore --output mock_DocumentStore.go
type DocumentStore interface {
	Read(ctx context.Context, conversationID string) ([]byte, error)
	Write(ctx context.Context, conversationID string, data []byte) error
	Close() error
}

type Storage struct {
	Documents DocumentStore
	Location  *time.Location

	logger *logrus.Logger
}

func New(documents DocumentStore, location *time.Location, logger *logrus.Logger) *Storage {
	if location == nil {
		location = time.Local
	}
	return &Storage{
		Documents: documents,
		Location:  location,
		logger:    logger,
	}
}

// NewStorage opens the backend selected by the configuration.
func NewStorage(ctx context.Context, env *config.Config, logger *logrus.Logger) (*Storage, error) {
	var documents DocumentStore

	switch env.StorageBackend {
	case config.StorageFile:
		store, err := file.NewStore(env.DataDir)
		if err != nil {
			return nil, err
		}
		documents = store
	case config.StoragePostgres:
		db, err := sql.Open("postgres", env.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err = sqlconfig.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		documents = sqlconfig.NewLedgersTable(db)
	case config.StorageGCS:
		client, err := gcs.NewClient(ctx, gcsClientOptions(env)...)
		if err != nil {
			return nil, fmt.Errorf("storage.NewClient: %w", err)
		}
		documents = gcsstore.NewStore(client, env.GCSBucket, env.GCSPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
	}

	logger.WithField("backend", env.StorageBackend).Info("Storage.NewStorage.opened")
	return New(documents, env.Location, logger), nil
}

// gcsClientOptions falls back to application default credentials when no
// key file is configured. An endpoint points the client at an emulator.
func gcsClientOptions(env *config.Config) []option.ClientOption {
	var opts []option.ClientOption
	if env.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(env.GCSCredentialsFile))
	}
	if env.GCSEndpoint != "" {
		opts = append(opts, option.WithEndpoint(env.GCSEndpoint), option.WithoutAuthentication())
	}
	return opts
}

func (s *Storage) Close() error {
	return s.Documents.Close()
}

func ValidateConversationID(conversationID string) error {
	if !conversationIDPattern.MatchString(conversationID) {
		return fmt.Errorf("%w: %q", ErrInvalidConversationID, conversationID)
	}
	return nil
}
