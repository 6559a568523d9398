package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps each ledger in <dir>/data_<conversationID>.json.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file.NewStore: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Path(conversationID string) string {
	return filepath.Join(s.dir, "data_"+conversationID+".json")
}

// Read returns the document; a missing file yields an error wrapping
// fs.ErrNotExist.
func (s *Store) Read(ctx context.Context, conversationID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path(conversationID))
}

// Write replaces the document atomically through a temp file in the same
// directory.
func (s *Store) Write(ctx context.Context, conversationID string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "data_"+conversationID+".*.tmp")
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}
	if err = os.Rename(tmpName, s.Path(conversationID)); err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
