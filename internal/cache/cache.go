package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/veridict/veridict/internal/model"
)

// Cache stores extracted article text keyed by URL, so repeated
// analyses of the same link skip the network round trip.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, text string) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}

// NewFromConfig builds the configured cache backend, or nil when
// caching is disabled.
func NewFromConfig(cfg model.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.TTL), nil
	case "disk":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("disk cache requires a directory")
		}
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk)", cfg.Backend)
	}
}
