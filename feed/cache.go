package feed

import (
	"log"
	"time"
)

// entry is the cached state of one source. Created on the first successful
// fetch, updated on every fetch that returns a body; the freshness check
// only reads it.
type entry struct {
	payload      []byte
	fetchedAt    time.Time
	etag         string
	lastModified string
}

// SourceCache owns the per-source cache entries across poll cycles. It is
// not safe for concurrent use; all writes happen in the synchronous Apply
// step after a cycle's fetches complete, so no locking is needed.
type SourceCache struct {
	sources     []Source
	minInterval time.Duration
	entries     []entry
}

// NewSourceCache creates a cache for the given sources. minInterval is the
// minimum time between network checks of the same source.
func NewSourceCache(sources []Source, minInterval time.Duration) *SourceCache {
	return &SourceCache{
		sources:     sources,
		minInterval: minInterval,
		entries:     make([]entry, len(sources)),
	}
}

// Sources returns the configured source list.
func (c *SourceCache) Sources() []Source { return c.sources }

// Plan returns the fetch requests for this cycle: every source whose
// freshness window has lapsed, carrying its validator tokens when known.
// Sources inside the window are skipped; their cached payload stands.
func (c *SourceCache) Plan(now time.Time) []Request {
	reqs := make([]Request, 0, len(c.sources))
	for i, src := range c.sources {
		e := &c.entries[i]
		if !e.fetchedAt.IsZero() && now.Sub(e.fetchedAt) < c.minInterval {
			continue
		}
		reqs = append(reqs, Request{
			Source:       i,
			URL:          src.URL,
			ETag:         e.etag,
			LastModified: e.lastModified,
		})
	}
	return reqs
}

// Apply folds one cycle's fetch results into the cache, in the order given
// (source-index order, since Plan emits requests that way). A body replaces
// the stored payload and validators; a 304 only refreshes the freshness
// window; an error leaves the entry untouched so the last good payload keeps
// serving.
func (c *SourceCache) Apply(results []Result, now time.Time) {
	for _, r := range results {
		if r.Source < 0 || r.Source >= len(c.entries) {
			continue
		}
		e := &c.entries[r.Source]
		switch {
		case r.Err != nil:
			log.Printf("feed: %s: %v", c.sources[r.Source].Name, r.Err)
		case r.NotModified:
			e.fetchedAt = now
		case r.Body != nil:
			e.payload = r.Body
			e.etag = r.ETag
			e.lastModified = r.LastModified
			e.fetchedAt = now
		}
	}
}

// Payloads returns the last good payload of every source, in source order.
// Sources that have never fetched successfully contribute nothing.
func (c *SourceCache) Payloads() [][]byte {
	out := make([][]byte, 0, len(c.entries))
	for i := range c.entries {
		if c.entries[i].payload != nil {
			out = append(out, c.entries[i].payload)
		}
	}
	return out
}

// CachedCount returns how many sources currently hold a payload.
func (c *SourceCache) CachedCount() int {
	n := 0
	for i := range c.entries {
		if c.entries[i].payload != nil {
			n++
		}
	}
	return n
}
