// Package storage implements the binary object store used for airplane
// images. The store is a flat directory keyed by object name; writes are
// last-write-wins (re-uploading an image for the same airplane replaces
// the previous one).
package storage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotImage is returned when an uploaded payload does not sniff as an
// image content type.
var ErrNotImage = errors.New("payload is not a valid image")

// ErrObjectNotFound is returned when a stored object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// sniffLen is how many leading bytes http.DetectContentType inspects.
const sniffLen = 512

// ImageStore persists image blobs under a root directory.
type ImageStore struct {
	root string
}

// NewImageStore creates the root directory if needed and returns a store.
func NewImageStore(root string) (*ImageStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage: root directory must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &ImageStore{root: root}, nil
}

// Put validates that data is an image and writes it under a key derived from
// the owning airplane id. It returns the storage key. The extension follows
// the sniffed content type; when a re-upload changes the format, blobs left
// under the airplane's previous keys are removed so last-write-wins holds at
// the blob level too.
func (s *ImageStore) Put(airplaneID uint, data []byte) (string, error) {
	ext, ok := imageExt(data)
	if !ok {
		return "", ErrNotImage
	}
	key := fmt.Sprintf("airplane_%d%s", airplaneID, ext)
	if err := os.WriteFile(filepath.Join(s.root, key), data, 0o644); err != nil {
		return "", err
	}
	if stale, err := filepath.Glob(filepath.Join(s.root, fmt.Sprintf("airplane_%d.*", airplaneID))); err == nil {
		for _, p := range stale {
			if filepath.Base(p) != key {
				_ = os.Remove(p)
			}
		}
	}
	return key, nil
}

// Get reads a stored object by key. Missing objects yield ErrObjectNotFound.
func (s *ImageStore) Get(key string) ([]byte, error) {
	// Keys are generated server-side, but reject separators anyway.
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, ErrObjectNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.root, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

// Remove deletes a stored object. Removing a missing key is not an error.
func (s *ImageStore) Remove(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// imageExt sniffs the payload and maps recognized image content types to a
// file extension.
func imageExt(data []byte) (string, bool) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	switch http.DetectContentType(head) {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
