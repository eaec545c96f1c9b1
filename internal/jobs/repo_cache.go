package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "jobs:list"
	cacheTTL = 5 * time.Minute
)

// CacheRepo is a read-through cache in front of another Repo. Cache
// failures are treated as misses so Redis being down never blocks a
// request.
type CacheRepo struct {
	Client *redis.Client
	Next   Repo
}

// List serves the cached job list when fresh, otherwise delegates to the
// underlying repo and repopulates the cache best-effort.
func (r *CacheRepo) List(ctx context.Context) ([]JobRecord, error) {
	if data, err := r.Client.Get(ctx, cacheKey).Bytes(); err == nil {
		var out []JobRecord
		if err := json.Unmarshal(data, &out); err == nil && len(out) > 0 {
			return out, nil
		}
	}

	out, err := r.Next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(out); err == nil {
		r.Client.Set(ctx, cacheKey, data, cacheTTL)
	}
	return out, nil
}
