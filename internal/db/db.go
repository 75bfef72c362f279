package db

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"dario.lol/hover/internal/constants"
	"go.etcd.io/bbolt"
)

var (
	db     *bbolt.DB
	dbPath string
	mu     sync.Mutex
)

var (
	CacheBucket       = []byte("cache")
	TagsBucket        = []byte("tags")
	IdentifiersBucket = []byte("identifiers")
)

var ErrBucketNotFound = errors.New("bucket not found")

// SetPath points the store at a different file. An open database is closed
// first.
func SetPath(path string) error {
	mu.Lock()
	defer mu.Unlock()

	dbPath = path
	return closeLocked()
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.ConfigName, "hover.db"), nil
}

func Open() (*bbolt.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if db != nil {
		return db, nil
	}

	path := dbPath
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	database, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = database.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{CacheBucket, TagsBucket, IdentifiersBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	db = database
	return db, nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

func Get(bucket, key []byte) ([]byte, error) {
	database, err := Open()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = database.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		// b.Get returns a direct reference; copy it to a new slice.
		if val := b.Get(key); val != nil {
			value = append([]byte(nil), val...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func Set(bucket, key, value []byte) error {
	database, err := Open()
	if err != nil {
		return err
	}

	return database.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Put(key, value)
	})
}

func Delete(bucket, key []byte) error {
	database, err := Open()
	if err != nil {
		return err
	}

	return database.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Delete(key)
	})
}

// AddTagsToKey records that the cache entry at key belongs to each tag.
func AddTagsToKey(key string, tags []string) error {
	database, err := Open()
	if err != nil {
		return err
	}

	return database.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(TagsBucket)
		if b == nil {
			return ErrBucketNotFound
		}
		for _, tag := range tags {
			keys, err := tagKeys(b, tag)
			if err != nil {
				return err
			}
			if slices.Contains(keys, key) {
				continue
			}
			encoded, err := json.Marshal(append(keys, key))
			if err != nil {
				return err
			}
			if err := b.Put([]byte(tag), encoded); err != nil {
				return err
			}
		}
		return nil
	})
}

// InvalidateTags drops every cache entry recorded under any of the tags,
// along with the tags themselves.
func InvalidateTags(tags []string) error {
	database, err := Open()
	if err != nil {
		return err
	}

	return database.Update(func(tx *bbolt.Tx) error {
		tagBucket := tx.Bucket(TagsBucket)
		cacheBucket := tx.Bucket(CacheBucket)
		if tagBucket == nil || cacheBucket == nil {
			return ErrBucketNotFound
		}
		for _, tag := range tags {
			keys, err := tagKeys(tagBucket, tag)
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := cacheBucket.Delete([]byte(key)); err != nil {
					return err
				}
			}
			if err := tagBucket.Delete([]byte(tag)); err != nil {
				return err
			}
		}
		return nil
	})
}

func tagKeys(b *bbolt.Bucket, tag string) ([]string, error) {
	raw := b.Get([]byte(tag))
	if raw == nil {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear empties the given buckets and returns the number of keys removed.
func Clear(buckets ...[]byte) (int, error) {
	database, err := Open()
	if err != nil {
		return 0, err
	}

	removed := 0
	err = database.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			b := tx.Bucket(name)
			if b == nil {
				return ErrBucketNotFound
			}
			removed += b.Stats().KeyN
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
