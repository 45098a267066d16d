package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore implements ArtifactStore on the local filesystem. References
// have the form "/uploads/<uuid><ext>" so they can be served directly.
type LocalStore struct {
	uploadDir string
}

func NewLocalStore(uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{uploadDir: uploadDir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename string, reader io.Reader) (string, error) {
	key := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.uploadDir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return "/uploads/" + key, nil
}

func (s *LocalStore) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	key, err := s.keyFromReference(reference)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.uploadDir, key))
}

func (s *LocalStore) Delete(ctx context.Context, reference string) error {
	key, err := s.keyFromReference(reference)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.uploadDir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// keyFromReference strips the /uploads/ prefix and rejects path traversal.
func (s *LocalStore) keyFromReference(reference string) (string, error) {
	key := strings.TrimPrefix(reference, "/uploads/")
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid artifact reference %q", reference)
	}
	return key, nil
}
