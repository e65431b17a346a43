package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// LocalStorage keeps uploaded model files on local disk under a single base
// directory. Keys are generated file names, never caller input, so a key
// can always be joined onto the base path safely.
type LocalStorage struct {
	basePath string
}

var _ interfaces.IModelStorage = (*LocalStorage)(nil)

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) Save(ctx context.Context, originalName string, contents io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".bin"
	}
	key := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().UnixNano(), ext)
	full := filepath.Join(s.basePath, key)

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return key, nil
}

func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.basePath, key))
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) BasePath() string {
	return s.basePath
}
