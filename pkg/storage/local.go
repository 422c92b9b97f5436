package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	imagesDir    = "images"
	defaultExt   = ".jpg"
	fetchTimeout = 10 * time.Second
)

// ImageStore persists avatar images under <publicDir>/images. Every stored
// file gets a freshly generated UUID name, so concurrent writes never
// collide. Returned paths are relative to the public directory and are what
// user records reference.
type ImageStore struct {
	publicDir string
	client    *http.Client
}

// NewImageStore creates the images directory if needed and returns a store
// rooted at publicDir.
func NewImageStore(publicDir string) (*ImageStore, error) {
	absDir, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, fmt.Errorf("resolve public dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(absDir, imagesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &ImageStore{
		publicDir: absDir,
		client:    &http.Client{Timeout: fetchTimeout},
	}, nil
}

// SaveUpload stores an uploaded file under a generated name, preserving the
// original extension, and returns its relative path.
func (s *ImageStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.write(src, extensionOf(fh.Filename))
}

// FetchRemote downloads the image at rawURL and stores it under a generated
// name. The request is bounded by the store's client timeout; expiry is
// treated as a fetch failure.
func (s *ImageStore) FetchRemote(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build avatar request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch avatar: unexpected status %d", resp.StatusCode)
	}

	return s.write(resp.Body, extensionFromURL(rawURL))
}

func (s *ImageStore) write(src io.Reader, ext string) (string, error) {
	relPath := path.Join(imagesDir, uuid.NewString()+ext)
	absPath := filepath.Join(s.publicDir, filepath.FromSlash(relPath))

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(absPath)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(absPath)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return relPath, nil
}

// PublicDir returns the absolute directory served as static content.
func (s *ImageStore) PublicDir() string { return s.publicDir }

func extensionOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 5 {
		return defaultExt
	}
	return ext
}

func extensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultExt
	}
	return extensionOf(path.Base(u.Path))
}
