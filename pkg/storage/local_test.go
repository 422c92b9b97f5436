package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["avatar"][0]
}

func TestSaveUpload(t *testing.T) {
	t.Parallel()

	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	rel, err := store.SaveUpload(uploadHeader(t, "me.png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "images/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(store.PublicDir(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveUpload_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.SaveUpload(uploadHeader(t, "a.jpg", []byte("one")))
	require.NoError(t, err)
	second, err := store.SaveUpload(uploadHeader(t, "a.jpg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFetchRemote(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote-image"))
	}))
	defer srv.Close()

	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	rel, err := store.FetchRemote(context.Background(), srv.URL+"/photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".png"))

	data, err := os.ReadFile(filepath.Join(store.PublicDir(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("remote-image"), data)
}

func TestFetchRemote_DefaultExtension(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	// No extension in the URL path falls back to .jpg.
	rel, err := store.FetchRemote(context.Background(), srv.URL+"/avatar")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".jpg"))
}

func TestFetchRemote_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.FetchRemote(context.Background(), srv.URL+"/missing.jpg")
	assert.Error(t, err)
}
