package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is the zero-dependency fallback used when no Redis address
// is configured, or in tests.
type MemoryCache struct {
	data   sync.Map
	config Config
	cancel context.CancelFunc
}

type entry struct {
	value      []byte
	expiration time.Time
}

// NewMemoryCache creates an in-memory cache with default configuration.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithConfig(DefaultConfig())
}

// NewMemoryCacheWithConfig creates an in-memory cache with custom configuration.
func NewMemoryCacheWithConfig(config Config) *MemoryCache {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemoryCache{config: config, cancel: cancel}
	go mc.reap(ctx)
	return mc
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := m.data.Load(m.config.Prefix + key)
	if !ok {
		return nil, ErrMiss{Key: key}
	}
	e := v.(entry)
	if !e.expiration.IsZero() && time.Now().After(e.expiration) {
		m.data.Delete(m.config.Prefix + key)
		return nil, ErrMiss{Key: key}
	}
	return e.value, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expiration = time.Now().Add(ttl)
	}
	m.data.Store(m.config.Prefix+key, e)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Delete(m.config.Prefix + key)
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Range(func(k, _ interface{}) bool {
		m.data.Delete(k)
		return true
	})
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v, ok := m.data.Load(m.config.Prefix + key)
	if !ok {
		return false, nil
	}
	e := v.(entry)
	if !e.expiration.IsZero() && time.Now().After(e.expiration) {
		m.data.Delete(m.config.Prefix + key)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *MemoryCache) reap(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			m.data.Range(func(k, v interface{}) bool {
				if e := v.(entry); !e.expiration.IsZero() && now.After(e.expiration) {
					m.data.Delete(k)
				}
				return true
			})
		}
	}
}
