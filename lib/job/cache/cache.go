package jobcache

import (
	"context"
	"encoding/json"
	dbmodels "recruitment-backend/models/db"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const openJobsKey = "jobs:open"

// Provider caches the public open-jobs list.
// Every Invalidate starts a new generation. A list read from the database is stored
// only if no invalidation happened since Generation was taken before the read.
type Provider interface {
	GetOpenJobs() (list []dbmodels.Job, ok bool)
	Generation() uint64
	SetOpenJobs(generation uint64, list []dbmodels.Job) (stored bool)
	Invalidate()
}

func NewInstance(ctx context.Context, ttl time.Duration) (Provider, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 16
	cfg.CleanWindow = ttl
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create open jobs cache")
	}
	return &impl{cache: cache}, nil
}

type impl struct {
	cache      *bigcache.BigCache
	mu         sync.Mutex
	generation uint64
}

func (i *impl) GetOpenJobs() ([]dbmodels.Job, bool) {
	data, err := i.cache.Get(openJobsKey)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			log.WithError(err).Warn("open jobs cache read failed")
		}
		return nil, false
	}
	list := []dbmodels.Job{}
	if err = json.Unmarshal(data, &list); err != nil {
		log.WithError(err).Warn("open jobs cache entry is broken")
		return nil, false
	}
	return list, true
}

func (i *impl) Generation() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.generation
}

func (i *impl) SetOpenJobs(generation uint64, list []dbmodels.Job) bool {
	data, err := json.Marshal(list)
	if err != nil {
		log.WithError(err).Warn("open jobs cache write failed")
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if generation != i.generation {
		return false
	}
	if err = i.cache.Set(openJobsKey, data); err != nil {
		log.WithError(err).Warn("open jobs cache write failed")
		return false
	}
	return true
}

func (i *impl) Invalidate() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.generation++
	err := i.cache.Delete(openJobsKey)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		log.WithError(err).Warn("open jobs cache invalidation failed")
	}
}
