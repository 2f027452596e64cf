// Package cache keeps job search results in two tiers: an in-process map
// in front of Redis. Without Redis only the first tier is used.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type JobCache struct {
	l1         sync.Map // key -> *entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewJobCache returns a cache whose entries live for ttl. rdb may be nil.
func NewJobCache(rdb *redis.Client, ttl time.Duration, maxEntries int) *JobCache {
	return &JobCache{rdb: rdb, ttl: ttl, maxEntries: maxEntries, now: time.Now}
}

// Key builds a deterministic key from search parameters. Site order and
// letter case do not matter.
func Key(p domain.JobSearchParams) string {
	sites := make([]string, len(p.Sites))
	for i, s := range p.Sites {
		sites[i] = strings.ToLower(s)
	}
	sort.Strings(sites)
	joined := strings.Join([]string{
		strings.Join(sites, ","),
		strings.ToLower(strings.TrimSpace(p.SearchTerm)),
		strings.ToLower(strings.TrimSpace(p.Location)),
		fmt.Sprint(p.ResultsWanted),
		fmt.Sprint(p.HoursOld),
		strings.ToLower(p.Country),
	}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("jobs:%x", hash[:12])
}

func (c *JobCache) Key(p domain.JobSearchParams) string {
	return Key(p)
}

// Get tries L1, then L2. An L2 hit is copied into L1.
func (c *JobCache) Get(ctx context.Context, key string) ([]domain.JobListing, bool) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) {
			var jobs []domain.JobListing
			if json.Unmarshal(e.data, &jobs) == nil {
				logger.Log.Debug("job cache: L1 hit", "key", key)
				return jobs, true
			}
		}
		c.l1.Delete(key) // expired or corrupt
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("job cache: L2 get failed", "error", err)
		}
		return nil, false
	}
	var jobs []domain.JobListing
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, false
	}
	logger.Log.Debug("job cache: L2 hit", "key", key)
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})
	return jobs, true
}

// Set stores jobs in both tiers.
func (c *JobCache) Set(ctx context.Context, key string, jobs []domain.JobListing) {
	data, err := json.Marshal(jobs)
	if err != nil {
		return
	}

	c.evictIfNeeded()
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.Log.Warn("job cache: L2 set failed", "error", err)
		}
	}
}

// evictIfNeeded drops expired entries, then the oldest ones, until L1 has
// room for one more.
func (c *JobCache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= c.maxEntries {
		var (
			oldestKey any
			oldestAt  time.Time
		)
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}
