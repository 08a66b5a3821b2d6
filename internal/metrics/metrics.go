// Package metrics provides application-level counters using stdlib expvar.
// Counters are automatically exported on the /debug/vars HTTP endpoint
// when expvar's handler is mounted by the serve command.
package metrics

import "expvar"

// Operation counters.
var (
	SessionsCreated  = expvar.NewInt("legacyloop_sessions_created_total")
	SessionsExpired  = expvar.NewInt("legacyloop_sessions_expired_total")
	AssetMutations   = expvar.NewInt("legacyloop_asset_mutations_total")
	EngagementLogged = expvar.NewInt("legacyloop_engagement_logged_total")
	CacheHits        = expvar.NewInt("legacyloop_content_cache_hits_total")
	CacheMisses      = expvar.NewInt("legacyloop_content_cache_misses_total")
	CacheFlushes     = expvar.NewInt("legacyloop_content_cache_flushes_total")
	ContentFallbacks = expvar.NewInt("legacyloop_content_fallbacks_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
