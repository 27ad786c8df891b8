// Package feed fetches GTFS-Realtime payloads from the upstream endpoints
// and caches them between poll cycles.
//
// Fetching is split in two: a Strategy performs the concurrent network work
// for one cycle (one goroutine per source, per-source timeouts, per-source
// failure isolation), and a SourceCache decides which sources actually need
// a network round trip and folds the results back into per-source state.
//
// Two Strategy implementations share one contract: the preferred HTTP/2
// client and a plain HTTP/1.1 fallback. The pipeline driver owns the choice
// between them; the cache is oblivious to which one ran.
//
// Cache policy per source and cycle:
//   - fetched less than the minimum interval ago: skip the network entirely,
//     reuse the cached payload;
//   - interval elapsed with known validators: conditional request
//     (If-None-Match / If-Modified-Since); a 304 refreshes the freshness
//     window and keeps the previous payload;
//   - interval elapsed, no validators: unconditional fetch;
//   - any failure: the last good payload, if any, stands in for this cycle.
package feed
