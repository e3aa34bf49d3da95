package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const profileCacheTTL = 5 * time.Minute

// CachedProfileRepository fronts a profile repository with Redis. Role
// resolution runs on every authenticated request, so misses are served from
// the backing store and written through with a short TTL. Cache failures are
// logged and fall back to the store; they never fail the request. A nil
// client disables caching and every lookup goes straight to the store.
type CachedProfileRepository struct {
	inner interfaces.IProfileRepository
	rdb   *redis.Client
}

var _ interfaces.IProfileRepository = (*CachedProfileRepository)(nil)

func NewCachedProfileRepository(inner interfaces.IProfileRepository, rdb *redis.Client) *CachedProfileRepository {
	return &CachedProfileRepository{inner: inner, rdb: rdb}
}

func (r *CachedProfileRepository) GetByID(ctx context.Context, id string) (entities.Profile, error) {
	if r.rdb == nil {
		return r.inner.GetByID(ctx, id)
	}
	key := "profile:" + id

	raw, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var p entities.Profile
		if uerr := json.Unmarshal([]byte(raw), &p); uerr == nil {
			return p, nil
		}
	} else if err != redis.Nil {
		log.Printf("[profile-cache][repository] get %s: %v", key, err)
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return entities.Profile{}, err
	}
	if p.ID == "" {
		return p, nil
	}

	if data, merr := json.Marshal(p); merr == nil {
		if serr := r.rdb.Set(ctx, key, data, profileCacheTTL).Err(); serr != nil {
			log.Printf("[profile-cache][repository] set %s: %v", key, serr)
		}
	}
	return p, nil
}
