package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets the cache-control header for the routes it wraps.
// The index page advertises the same max-age as the server-side
// listing cache TTL; everything else is no-cache.
type CacheRouter struct {
	CacheTime int // seconds; defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				c.Header("cache-control", "max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}
