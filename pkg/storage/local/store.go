package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store persists uploaded files on the local filesystem and serves them
// under a public base path.
type Store struct {
	dir        string
	publicBase string
}

// StoredObject describes one persisted upload.
type StoredObject struct {
	Key  string
	URL  string
	Size int64
}

// New ensures the upload directory exists and returns a store rooted there.
func New(dir, publicBase string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if publicBase == "" {
		return nil, errors.New("public base path is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return &Store{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save streams the reader to disk under a random key with the given
// extension. The caller is responsible for size and content-type checks.
func (s *Store) Save(ctx context.Context, ext string, r io.Reader) (StoredObject, error) {
	if s == nil {
		return StoredObject{}, errors.New("store not initialized")
	}
	if err := ctx.Err(); err != nil {
		return StoredObject{}, err
	}

	key, err := randomKey(ext)
	if err != nil {
		return StoredObject{}, err
	}

	full := filepath.Join(s.dir, key)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StoredObject{}, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return StoredObject{}, fmt.Errorf("write upload file: %w", err)
	}

	return StoredObject{
		Key:  key,
		URL:  path.Join(s.publicBase, key),
		Size: size,
	}, nil
}

// Delete removes a stored object. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil {
		return errors.New("store not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Base(key)
	if clean != key || key == "" || key == "." {
		return fmt.Errorf("invalid object key %q", key)
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func randomKey(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	key := hex.EncodeToString(buf)
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext != "" {
		key = key + "." + ext
	}
	return key, nil
}
