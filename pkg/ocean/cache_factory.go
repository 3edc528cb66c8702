package ocean

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/constants"
)

// CacheType selects the cache backend.
type CacheType string

const (
	// CacheTypeMemory selects the in-process cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS selects the shared NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// CacheConfig configures the catalog cache backend.
type CacheConfig struct {
	// Type is the cache backend type.
	Type CacheType `yaml:"type" json:"type"`

	// Memory cache configuration.
	Memory *MemoryCacheConfig `yaml:"memory,omitempty" json:"memory,omitempty"`

	// NATS KV cache configuration.
	NATS *NATSKVConfig `yaml:"nats,omitempty" json:"nats,omitempty"`

	// TTL is how long catalog responses stay fresh. Zero selects the
	// default of one hour.
	TTL time.Duration `yaml:"ttl,omitempty" json:"ttl,omitempty"`
}

// MemoryCacheConfig configures the in-process cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of cached entries.
	MaxSize int `yaml:"max_size" json:"max_size"`
}

// DefaultCacheConfig returns the default in-process cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: DefaultCacheMaxSize,
		},
		TTL: DefaultCatalogTTL,
	}
}

// Catalog cache defaults.
const (
	DefaultCacheMaxSize = constants.DefaultCacheMaxSize
	DefaultCatalogTTL   = constants.DefaultCatalogTTL
)

// EntryTTL returns the configured TTL, falling back to the default.
func (c *CacheConfig) EntryTTL() time.Duration {
	if c == nil || c.TTL <= 0 {
		return DefaultCatalogTTL
	}

	return c.TTL
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		maxSize := DefaultCacheMaxSize
		if config.Memory != nil && config.Memory.MaxSize > 0 {
			maxSize = config.Memory.MaxSize
		}

		return NewMemoryCache(maxSize), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NoOpCache is a cache that stores nothing.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns ErrCacheDisabled.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// Close does nothing.
func (c *NoOpCache) Close() error {
	return nil
}
