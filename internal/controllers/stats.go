package controllers

import (
	"time"

	"github.com/sirupsen/logrus"

	"lifedrop/internal/cache"
)

// statsCacheTTL bounds how stale the dashboard statistics may be.
const statsCacheTTL = time.Minute

// cacheGet loads a cached statistics payload. A nil client or any Redis
// failure degrades to a cache miss so the request falls through to the
// database.
func cacheGet(rc *cache.RedisClient, key string, dest interface{}) bool {
	if rc == nil {
		return false
	}
	hit, err := rc.GetJSON(key, dest)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("stats cache read failed")
		return false
	}
	return hit
}

func cacheSet(rc *cache.RedisClient, key string, value interface{}) {
	if rc == nil {
		return
	}
	if err := rc.SetJSON(key, value, statsCacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("stats cache write failed")
	}
}
