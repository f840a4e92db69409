// Package cache holds the rendered copy of the public index page.
//
// The cache is a single process-wide slot with a TTL. Writes to posts
// do NOT invalidate it: the page may be stale for up to CACHE_TIME
// seconds, which is the accepted trade-off for not tracking cache keys
// per affected listing. Grouped listings, profiles and the personal
// follow feed are never cached.
package cache

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

const indexKey = "index"

type entry struct {
	body    []byte
	expires time.Time
}

// cmap swaps entries whole, so a reader racing a Put sees either the
// old page or the new one, never a partial write.
var pages = cmap.New[entry]()

// Get returns the cached index page if present and unexpired.
func Get() ([]byte, bool) {
	e, ok := pages.Get(indexKey)
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.body, true
}

// Put stores a freshly rendered index page and restarts the expiry window.
func Put(body []byte, ttl time.Duration) {
	pages.Set(indexKey, entry{body: body, expires: time.Now().Add(ttl)})
}

// Invalidate clears the slot. Used by tests and admin tooling only;
// regular writes rely on TTL expiry.
func Invalidate() {
	pages.Remove(indexKey)
}
