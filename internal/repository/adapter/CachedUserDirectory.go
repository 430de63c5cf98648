package adapter

import (
	"context"
	"encoding/json"
	"time"

	cacheport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/cache/port"
	repository "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

const profileCacheTTL = 10 * time.Minute

// CachedUserDirectory decorates a UserDirectory with a read-through cache.
// Listing endpoints resolve the same counterpart profiles over and over;
// the projection is small and tolerates short staleness.
type CachedUserDirectory struct {
	inner repository.UserDirectory
	cache cacheport.Cache
}

func NewCachedUserDirectory(inner repository.UserDirectory, cache cacheport.Cache) *CachedUserDirectory {
	return &CachedUserDirectory{inner: inner, cache: cache}
}

var _ repository.UserDirectory = (*CachedUserDirectory)(nil)

func (d *CachedUserDirectory) FindByID(ctx context.Context, id string) (*repository.PublicProfile, error) {
	key := "user:profile:" + id

	// Misses and cache faults both fall through to the source of truth;
	// a broken cache never fails a read.
	if d.cache != nil {
		if raw, err := d.cache.Get(ctx, key); err == nil {
			var p repository.PublicProfile
			if jsonErr := json.Unmarshal([]byte(raw), &p); jsonErr == nil {
				return &p, nil
			}
		}
	}

	p, err := d.inner.FindByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if d.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			_ = d.cache.Set(ctx, key, string(raw), profileCacheTTL)
		}
	}
	return p, nil
}
