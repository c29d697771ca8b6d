package storage

import (
	"bytes"
	"errors"
	"testing"
)

// minimal valid PNG header followed by padding; enough for content sniffing.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func newStore(t *testing.T) *ImageStore {
	t.Helper()
	s, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	return s
}

func TestNewImageStore_EmptyRoot(t *testing.T) {
	if _, err := NewImageStore("  "); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestPut_RejectsNonImage(t *testing.T) {
	s := newStore(t)
	if _, err := s.Put(1, []byte("just some text, not an image")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err = %v, want ErrNotImage", err)
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := newStore(t)
	key, err := s.Put(7, pngBytes)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "airplane_7.png" {
		t.Fatalf("key = %q", key)
	}
	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, pngBytes) {
		t.Fatal("round-trip bytes mismatch")
	}
}

func TestPut_Overwrites(t *testing.T) {
	s := newStore(t)
	if _, err := s.Put(3, pngBytes); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	second := append(append([]byte{}, pngBytes...), 0xFF)
	key, err := s.Put(3, second)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	got, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Fatal("expected last write to win")
	}
}

func TestPut_FormatChangeDropsStaleBlob(t *testing.T) {
	s := newStore(t)
	jpgBytes := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
	oldKey, err := s.Put(5, jpgBytes)
	if err != nil {
		t.Fatalf("jpeg Put: %v", err)
	}
	if oldKey != "airplane_5.jpg" {
		t.Fatalf("key = %q", oldKey)
	}
	newKey, err := s.Put(5, pngBytes)
	if err != nil {
		t.Fatalf("png Put: %v", err)
	}
	if newKey != "airplane_5.png" {
		t.Fatalf("key = %q", newKey)
	}
	if _, err := s.Get(oldKey); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("stale jpeg blob survived the format change: err = %v", err)
	}
	if _, err := s.Get(newKey); err != nil {
		t.Fatalf("Get new key: %v", err)
	}
	// Neighboring airplanes are untouched.
	other, _ := s.Put(51, jpgBytes)
	if _, err := s.Put(5, pngBytes); err != nil {
		t.Fatalf("re-Put: %v", err)
	}
	if _, err := s.Get(other); err != nil {
		t.Fatalf("airplane 51 blob removed by airplane 5 upload: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	s := newStore(t)
	if _, err := s.Get("airplane_99.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("err = %v, want ErrObjectNotFound", err)
	}
	if _, err := s.Get("../escape.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("err = %v, want ErrObjectNotFound for traversal key", err)
	}
}

func TestRemove_MissingIsNoop(t *testing.T) {
	s := newStore(t)
	if err := s.Remove("airplane_1.png"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	key, _ := s.Put(1, pngBytes)
	if err := s.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Get(key); !errors.Is(err, ErrObjectNotFound) {
		t.Fatal("object should be gone after Remove")
	}
}
