package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func useTempDB(t *testing.T) {
	t.Helper()
	if err := SetPath(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("SetPath() error = %v", err)
	}
	t.Cleanup(func() { _ = SetPath("") })
}

func TestSetGetDelete(t *testing.T) {
	useTempDB(t)

	if err := Set(CacheBucket, []byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := Get(CacheBucket, []byte("k"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want v", got)
	}

	if err := Delete(CacheBucket, []byte("k")); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err = Get(CacheBucket, []byte("k"))
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after delete = %q, want nil", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	useTempDB(t)

	got, err := Get(IdentifiersBucket, []byte("missing"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %q, want nil", got)
	}
}

func TestUnknownBucket(t *testing.T) {
	useTempDB(t)

	if err := Set([]byte("nope"), []byte("k"), []byte("v")); err != ErrBucketNotFound {
		t.Errorf("Set() error = %v, want ErrBucketNotFound", err)
	}
	if _, err := Get([]byte("nope"), []byte("k")); err != ErrBucketNotFound {
		t.Errorf("Get() error = %v, want ErrBucketNotFound", err)
	}
}

func TestInvalidateTags(t *testing.T) {
	useTempDB(t)

	for _, key := range []string{"a", "b", "c"} {
		if err := Set(CacheBucket, []byte(key), []byte(key)); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}
	if err := AddTagsToKey("a", []string{"domain:dom1", "dns:all"}); err != nil {
		t.Fatalf("AddTagsToKey(a) error = %v", err)
	}
	if err := AddTagsToKey("b", []string{"domain:dom12"}); err != nil {
		t.Fatalf("AddTagsToKey(b) error = %v", err)
	}
	if err := AddTagsToKey("c", []string{"domain:dom1"}); err != nil {
		t.Fatalf("AddTagsToKey(c) error = %v", err)
	}
	// Tagging twice must not duplicate.
	if err := AddTagsToKey("c", []string{"domain:dom1"}); err != nil {
		t.Fatalf("AddTagsToKey(c) again error = %v", err)
	}

	if err := InvalidateTags([]string{"domain:dom1"}); err != nil {
		t.Fatalf("InvalidateTags() error = %v", err)
	}

	tests := []struct {
		key     string
		present bool
	}{
		{"a", false},
		{"b", true},
		{"c", false},
	}
	for _, tt := range tests {
		got, err := Get(CacheBucket, []byte(tt.key))
		if err != nil {
			t.Fatalf("Get(%s) error = %v", tt.key, err)
		}
		if (got != nil) != tt.present {
			t.Errorf("key %s present = %v, want %v", tt.key, got != nil, tt.present)
		}
	}

	tag, err := Get(TagsBucket, []byte("domain:dom1"))
	if err != nil {
		t.Fatalf("Get(tag) error = %v", err)
	}
	if tag != nil {
		t.Errorf("tag domain:dom1 still present: %s", tag)
	}
}

func TestInvalidateUnknownTag(t *testing.T) {
	useTempDB(t)

	if err := InvalidateTags([]string{"never-set"}); err != nil {
		t.Errorf("InvalidateTags() error = %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	if err := SetPath(path); err != nil {
		t.Fatalf("SetPath() error = %v", err)
	}
	t.Cleanup(func() { _ = SetPath("") })

	if err := Set(IdentifiersBucket, []byte("domain:example.com"), []byte("dom123")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := Get(IdentifiersBucket, []byte("domain:example.com"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "dom123" {
		t.Errorf("Get() = %q, want dom123", got)
	}
}

func TestClear(t *testing.T) {
	useTempDB(t)

	for _, k := range []string{"a", "b"} {
		if err := Set(CacheBucket, []byte(k), []byte("v")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if err := Set(IdentifiersBucket, []byte("domain:example.com"), []byte("dom1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	removed, err := Clear(CacheBucket)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear() removed = %d, want 2", removed)
	}

	if got, _ := Get(CacheBucket, []byte("a")); got != nil {
		t.Errorf("cache entry survived Clear: %q", got)
	}
	if got, _ := Get(IdentifiersBucket, []byte("domain:example.com")); string(got) != "dom1" {
		t.Errorf("identifier = %q, want dom1", got)
	}

	if err := Set(CacheBucket, []byte("c"), []byte("v")); err != nil {
		t.Errorf("Set() after Clear error = %v", err)
	}
}

func TestClearUnknownBucket(t *testing.T) {
	useTempDB(t)

	if _, err := Clear([]byte("nope")); !errors.Is(err, ErrBucketNotFound) {
		t.Errorf("Clear() error = %v, want ErrBucketNotFound", err)
	}
}
