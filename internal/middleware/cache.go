package middleware

import "github.com/gin-gonic/gin"

// CacheStatusHeader reports whether a response was served from the cache.
const CacheStatusHeader = "X-Cache"

// SetCacheHit records cache hit information for the current response. It must
// be called before the body is written.
func SetCacheHit(c *gin.Context, hit bool) {
	if c == nil {
		return
	}
	status := "MISS"
	if hit {
		status = "HIT"
	}
	c.Header(CacheStatusHeader, status)
}
