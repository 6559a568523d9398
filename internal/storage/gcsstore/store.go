package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"cloud.google.com/go/storage"
)

// Store keeps each ledger as the object <prefix>data_<conversationID>.json.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewStore(client *storage.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *Store) ObjectName(conversationID string) string {
	return s.prefix + "data_" + conversationID + ".json"
}

func (s *Store) Read(ctx context.Context, conversationID string) ([]byte, error) {
	reader, err := s.client.Bucket(s.bucket).Object(s.ObjectName(conversationID)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("gcsstore.Read %s: %w", s.ObjectName(conversationID), fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("gcsstore.Read: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("gcsstore.Read: %w", err)
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, conversationID string, data []byte) error {
	writer := s.client.Bucket(s.bucket).Object(s.ObjectName(conversationID)).NewWriter(ctx)
	writer.ContentType = "application/json; charset=utf-8"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("gcsstore.Write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("gcsstore.Write: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
