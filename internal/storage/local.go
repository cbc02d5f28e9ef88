package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImagePrefix is the key prefix under which recipe images are stored.
const ImagePrefix = "recipes/images"

// LocalStore writes images below a media root on the local filesystem.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a LocalStore. baseURL is prepended to returned references.
func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes the image under a fresh name and returns its URL.
func (s *LocalStore) Save(_ context.Context, img Image) (string, error) {
	if !img.Inline() {
		return img.Ref, nil
	}
	key := path.Join(ImagePrefix, uuid.New().String()+"."+img.Ext)
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(dst, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes an image previously returned by Save. References this store
// did not produce are ignored.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.baseURL+"/")
	if !ok || !strings.HasPrefix(key, ImagePrefix+"/") || strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}
