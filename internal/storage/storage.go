package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves uploaded product images and hands back a public URL.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// FSStore writes blobs under Dir and serves them below BaseURL. Filenames
// are regenerated so uploads can never collide or traverse paths.
type FSStore struct {
	Dir     string
	BaseURL string
}

func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &FSStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FSStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return s.BaseURL + "/" + path.Clean(name), nil
}
