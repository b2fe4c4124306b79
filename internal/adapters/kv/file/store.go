// Package file keeps key-value entries as files under a root directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/ports"
)

const (
	storeDirMode    = 0o700
	entryFileMode   = 0o600
	tempFilePattern = ".entry-*.tmp"
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the entry atomically through a temp file and rename.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create entry directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp entry %q: %w", key, err)
	}
	tempName := tempFile.Name()
	cleanup := func() { _ = os.Remove(tempName) }

	if err := tempFile.Chmod(entryFileMode); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("chmod temp entry %q: %w", key, err)
	}
	if _, err := tempFile.Write(value); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("write temp entry %q: %w", key, err)
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("sync temp entry %q: %w", key, err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp entry %q: %w", key, err)
	}
	if err := os.Rename(tempName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file entry %q: %w", key, domain.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("read file entry %q: %w", key, err)
	}

	return data, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("entry key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid entry key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
