package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"foodgram/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDecodeImage(t *testing.T) {
	img, err := storage.DecodeImage(pngDataURI)
	require.NoError(t, err)
	assert.True(t, img.Inline())
	assert.Equal(t, "png", img.Ext)
	assert.Equal(t, []byte("\x89PNG"), img.Data[:4])

	img, err = storage.DecodeImage("data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "jpg", img.Ext)

	img, err = storage.DecodeImage("https://cdn.example.com/pie.png")
	require.NoError(t, err)
	assert.False(t, img.Inline())
	assert.Equal(t, "https://cdn.example.com/pie.png", img.Ref)

	for _, bad := range []string{
		"",
		"data:image/png,plain",
		"data:image/;base64,AAAA",
		"data:image/../x;base64,AAAA",
		"data:image/png;base64,***",
		"data:image/png;base64,",
	} {
		_, err := storage.DecodeImage(bad)
		assert.ErrorIs(t, err, storage.ErrInvalidImage, bad)
	}
}

func TestLocalStore(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalStore(root, "/media/")
	ctx := context.Background()

	img, err := storage.DecodeImage(pngDataURI)
	require.NoError(t, err)
	ref, err := store.Save(ctx, img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/media/recipes/images/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	path := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(ref, "/media/")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	// Deleting twice or deleting foreign references is a no-op.
	assert.NoError(t, store.Delete(ctx, ref))
	assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/pie.png"))
	assert.NoError(t, store.Delete(ctx, "/media/recipes/images/../../secret"))

	passthrough, err := store.Save(ctx, storage.Image{Ref: "https://cdn.example.com/pie.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pie.png", passthrough)
}

type s3Request struct {
	method, path string
	size         int
}

func TestS3Store(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []s3Request
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, s3Request{method: r.Method, path: r.URL.Path, size: len(body)})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := context.Background()
	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    "recipes",
		Region:    "us-east-1",
		Endpoint:  server.URL,
		AccessKey: "test",
		SecretKey: "test",
		PublicURL: "https://img.example.com/",
	})
	require.NoError(t, err)

	img, err := storage.DecodeImage(pngDataURI)
	require.NoError(t, err)
	ref, err := store.Save(ctx, img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "https://img.example.com/recipes/images/"))

	require.NoError(t, store.Delete(ctx, ref))
	// Foreign references never reach the bucket.
	require.NoError(t, store.Delete(ctx, "https://cdn.example.com/pie.png"))

	key := strings.TrimPrefix(ref, "https://img.example.com/")
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[0].method)
	assert.Equal(t, "/recipes/"+key, requests[0].path)
	assert.Equal(t, http.MethodDelete, requests[1].method)
	assert.Equal(t, "/recipes/"+key, requests[1].path)
}
