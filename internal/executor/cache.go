package executor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/db"
	"dario.lol/hover/internal/flags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const DefaultCacheTTL = 5 * time.Minute

// CachedResult stores cached data with timestamp
type CachedResult struct {
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// uncachedFlags change how a command runs, not what it returns.
var uncachedFlags = map[string]bool{
	flags.NoCacheFlag:     true,
	flags.VerboseFlag:     true,
	flags.MetricsFileFlag: true,
}

func cachingEnabled() bool {
	return config.Cfg.Caching
}

func noCacheRequested(cmd *cobra.Command) bool {
	noCache, _ := cmd.Flags().GetBool(flags.NoCacheFlag)
	return noCache
}

// generateCacheKey identifies a command invocation for the current account.
func generateCacheKey(cmd *cobra.Command, args []string) string {
	keyParts := []string{config.Cfg.BaseURL, config.Cfg.Username, cmd.CommandPath()}
	keyParts = append(keyParts, args...)

	var flagParts []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Changed && !uncachedFlags[f.Name] {
			flagParts = append(flagParts, fmt.Sprintf("--%s=%s", f.Name, f.Value.String()))
		}
	})
	sort.Strings(flagParts)
	keyParts = append(keyParts, flagParts...)

	h := sha256.New()
	h.Write([]byte(strings.Join(keyParts, ";")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// loadCached unmarshals a fresh cache entry into v.
func loadCached(cacheKey string, v any) bool {
	cachedBytes, _ := db.Get(db.CacheBucket, []byte(cacheKey))
	if cachedBytes == nil {
		return false
	}

	var cachedResult CachedResult
	if err := json.Unmarshal(cachedBytes, &cachedResult); err != nil {
		return false
	}
	if time.Since(cachedResult.Timestamp) > DefaultCacheTTL {
		return false
	}

	return json.Unmarshal(cachedResult.Data, v) == nil
}

// storeCached saves v under cacheKey and files it under tags.
func storeCached(cacheKey string, v any, tags []string) error {
	dataToCache, err := json.Marshal(v)
	if err != nil {
		return err
	}

	bytesToStore, err := json.Marshal(CachedResult{
		Timestamp: time.Now(),
		Data:      dataToCache,
	})
	if err != nil {
		return err
	}

	if err := db.Set(db.CacheBucket, []byte(cacheKey), bytesToStore); err != nil {
		return err
	}
	return db.AddTagsToKey(cacheKey, tags)
}

func invalidate(tags []string) {
	if len(tags) > 0 {
		_ = db.InvalidateTags(tags)
	}
}
