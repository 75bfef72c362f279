package hoverapi

import (
	"encoding/json"
	"fmt"
	"time"

	"dario.lol/hover/internal/db"
	"github.com/sirupsen/logrus"
)

var cacheLog = logrus.WithField("component", "id-cache")

type CacheEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// GetID returns the identifier cached under key.
func GetID(key string) (string, bool) {
	raw, err := db.Get(db.IdentifiersBucket, []byte(key))
	if err != nil || raw == nil {
		return "", false
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", false
	}
	return entry.ID, true
}

func SetID(key, id string) {
	raw, err := json.Marshal(CacheEntry{ID: id, Timestamp: time.Now()})
	if err != nil {
		cacheLog.WithError(err).WithField("key", key).Debug("encoding cached id")
		return
	}
	if err := db.Set(db.IdentifiersBucket, []byte(key), raw); err != nil {
		cacheLog.WithError(err).WithField("key", key).Debug("storing cached id")
	}
}

func ForgetID(key string) {
	if err := db.Delete(db.IdentifiersBucket, []byte(key)); err != nil {
		cacheLog.WithError(err).WithField("key", key).Debug("forgetting cached id")
	}
}

func DomainCacheKey(domain string) string {
	return fmt.Sprintf("domain:%s", domain)
}

func DNSRecordCacheKey(domainID, recordName string) string {
	return fmt.Sprintf("dns:%s:%s", domainID, recordName)
}

func DNSRecordCacheKeyByID(recordID string) string {
	return fmt.Sprintf("dns:%s", recordID)
}
