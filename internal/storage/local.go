package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes avatars to a directory on disk.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, upload Upload) (string, error) {
	if err := ValidateAvatar(upload); err != nil {
		return "", err
	}

	name := uniqueName(upload.ContentType)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer f.Close()

	// LimitReader guards against a reader longer than the declared size.
	if _, err := io.Copy(f, io.LimitReader(upload.Reader, MaxAvatarSize+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	info, err := f.Stat()
	if err == nil && info.Size() > MaxAvatarSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	return name, nil
}

func (s *LocalStorage) Remove(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
