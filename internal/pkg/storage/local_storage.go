package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage persists uploaded file bytes and hands back an opaque path the
// document row carries.
type Storage interface {
	Save(userId uuid.UUID, filename string, content []byte) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
}

// LocalStorage keeps uploads on the local filesystem under
// <baseDir>/<user>/<uuid>_<name>.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (s *LocalStorage) Save(userId uuid.UUID, filename string, content []byte) (string, error) {
	userDir := filepath.Join(s.baseDir, userId.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// The uuid prefix keeps repeated uploads of the same name apart.
	safeName := filepath.Base(filename)
	path := filepath.Join(userDir, fmt.Sprintf("%s_%s", uuid.New().String(), safeName))

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func (s *LocalStorage) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *LocalStorage) Delete(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
