// Package storage talks to the object store holding cabin images. The store
// is a plain HTTP surface: objects are PUT under a bucket path and become
// publicly readable at a fixed, predictable URL prefix.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadPlan is the deterministic naming decision for one upload, computed
// before any row write so the final reference can be embedded in one step.
type UploadPlan struct {
	// Name is the object name inside the bucket.
	Name string
	// URL is the public reference the owning row will store.
	URL string
}

// AssetStore uploads binary objects and resolves their public references.
type AssetStore interface {
	// Plan synthesizes a collision-resistant object name for the given
	// original filename and returns the public URL it will resolve to.
	Plan(filename string) UploadPlan

	// Upload stores the object under the planned name. Either the object
	// becomes readable at the planned URL or an error is returned; partial
	// uploads are never exposed.
	Upload(ctx context.Context, name string, data []byte) error

	// Owns reports whether ref already points into this store, meaning the
	// asset exists and no upload is needed.
	Owns(ref string) bool
}

// HTTPAssetStore is the HTTP implementation of AssetStore.
type HTTPAssetStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAssetStore creates a store client rooted at baseURL, e.g.
// "https://objects.example.com/storage/v1/object/public/cabin-images".
func NewHTTPAssetStore(baseURL string, client *http.Client) *HTTPAssetStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPAssetStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Plan prefixes the sanitized filename with a random component. Path
// separators are stripped so the name cannot be read as a nested path.
func (s *HTTPAssetStore) Plan(filename string) UploadPlan {
	name := uuid.NewString() + "-" + sanitizeName(filename)
	return UploadPlan{
		Name: name,
		URL:  s.baseURL + "/" + name,
	}
}

// Upload PUTs the object bytes under the planned name.
func (s *HTTPAssetStore) Upload(ctx context.Context, name string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/"+name, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Owns reports whether ref is already a reference into this store.
func (s *HTTPAssetStore) Owns(ref string) bool {
	return strings.HasPrefix(ref, s.baseURL+"/")
}

// BaseURL returns the public prefix objects resolve under.
func (s *HTTPAssetStore) BaseURL() string {
	return s.baseURL
}

func sanitizeName(filename string) string {
	name := strings.ReplaceAll(filename, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	if name == "" {
		name = "image"
	}
	return name
}
