package objectstore

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

// DiskStore writes objects under a local directory served at urlPrefix.
type DiskStore struct {
	dir       string
	urlPrefix string
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &DiskStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Upload stores the object under a fresh random name. Only the extension of
// the supplied name is kept, so callers cannot steer the path written to.
func (d *DiskStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if strings.ContainsAny(ext, "/\\") {
		return "", ErrInvalidPath
	}

	fileName := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(d.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close object file: %w", err)
	}

	return path.Join(d.urlPrefix, fileName), nil
}

// Dir returns the backing directory, for wiring a static file server.
func (d *DiskStore) Dir() string {
	return d.dir
}
