package trends

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rubenaguilar/fantasy-trends/internal/events"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// Fetcher retrieves the raw market analytics page.
// Satisfied by *analytics_http.Client.
type Fetcher interface {
	FetchMarketHTML(ctx context.Context) (string, error)
}

// SnapshotStore persists the scraped dataset between runs. Load returns an
// empty map and zero time when no valid snapshot exists (records without a
// timestamp, or vice versa, count as no snapshot).
type SnapshotStore interface {
	Load() (map[string]Record, time.Time, error)
	Save(records map[string]Record, scrapedAt time.Time) error
}

// Refresh outcome sources.
const (
	SourceFresh          = "fresh"
	SourceSnapshot       = "snapshot"
	SourceCachedFallback = "cached_fallback"
	SourceFailed         = "failed"
)

// FetchResult is the non-throwing outcome of Initialize/Refresh. Err is
// informational; Success and Source carry the decision.
type FetchResult struct {
	Success      bool
	Source       string
	PlayersCount int
	Err          error
}

// Store owns the scraped market-trend dataset: a key-indexed in-memory map,
// a persisted snapshot with a staleness window, and the lookup/statistics
// surface the UI consumes. Each refresh replaces the whole map atomically;
// readers behind the RWMutex never observe a half-updated dataset.
// Concurrent Initialize/Refresh calls are coalesced into one fetch via
// singleflight.
type Store struct {
	fetcher Fetcher
	snap    SnapshotStore
	bus     *events.Bus
	ttl     time.Duration

	mu         sync.RWMutex
	cache      map[string]Record
	lastScrape time.Time

	sf  singleflight.Group
	now func() time.Time // overridable in tests
}

// NewStore wires a Store. snap and bus may be nil (no persistence, no
// event publication); fetcher may be nil for a snapshot-only store.
func NewStore(fetcher Fetcher, snap SnapshotStore, bus *events.Bus, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		fetcher: fetcher,
		snap:    snap,
		bus:     bus,
		ttl:     ttl,
		cache:   make(map[string]Record),
		now:     time.Now,
	}
}

// Initialize brings the store to a Ready state: a fresh-enough snapshot is
// served without touching the network, anything else triggers a fetch with
// fallback to whatever cache exists. Callable repeatedly; concurrent calls
// share one underlying load.
func (s *Store) Initialize(ctx context.Context) FetchResult {
	res, _, _ := s.sf.Do("initialize", func() (any, error) {
		return s.initialize(ctx), nil
	})
	return res.(FetchResult)
}

func (s *Store) initialize(ctx context.Context) FetchResult {
	if s.snap != nil {
		records, scrapedAt, err := s.snap.Load()
		if err != nil {
			telemetry.Warnf("trends: snapshot load failed: %v", err)
		} else if len(records) > 0 {
			telemetry.Metrics.SnapshotLoads.Inc()
			s.replaceCache(records, scrapedAt)
			if s.now().Sub(scrapedAt) <= s.ttl {
				telemetry.Infof("trends: serving %d records from snapshot (%s old)",
					len(records), s.now().Sub(scrapedAt).Round(time.Minute))
				s.publishRefresh(SourceSnapshot, len(records))
				return FetchResult{Success: true, Source: SourceSnapshot, PlayersCount: len(records)}
			}
			telemetry.Infof("trends: snapshot is stale, refreshing")
		}
	}
	return s.fetchAndSwap(ctx)
}

// Refresh forces a new fetch regardless of staleness. Concurrent calls are
// coalesced into a single network request.
func (s *Store) Refresh(ctx context.Context) FetchResult {
	res, _, _ := s.sf.Do("refresh", func() (any, error) {
		return s.fetchAndSwap(ctx), nil
	})
	return res.(FetchResult)
}

func (s *Store) fetchAndSwap(ctx context.Context) FetchResult {
	if s.fetcher == nil {
		return s.fallbackOrFail(fmt.Errorf("no fetcher configured"))
	}

	start := s.now()
	html, err := s.fetcher.FetchMarketHTML(ctx)
	telemetry.Metrics.MarketFetchLatency.Record(time.Since(start))
	if err != nil {
		telemetry.Metrics.MarketFetchErrors.Inc()
		return s.fallbackOrFail(fmt.Errorf("fetch market page: %w", err))
	}
	telemetry.Metrics.MarketFetches.Inc()

	parsed, err := ParseMarketHTML(html)
	if err != nil {
		return s.parseFailure(err)
	}
	if len(parsed) == 0 {
		// A page that parses to nothing means the markup changed, not that
		// the market is empty. Keep the old cache instead of poisoning it.
		return s.parseFailure(fmt.Errorf("parse market page: 0 records, markup drift?"))
	}

	records := make(map[string]Record, len(parsed))
	for _, r := range parsed {
		records[r.Key()] = r // last write wins on colliding keys
	}

	scrapedAt := s.now()
	s.replaceCache(records, scrapedAt)

	if s.snap != nil {
		if err := s.snap.Save(records, scrapedAt); err != nil {
			telemetry.Warnf("trends: snapshot save failed: %v", err)
		} else {
			telemetry.Metrics.SnapshotWrites.Inc()
		}
	}

	telemetry.Infof("trends: refreshed %d market records", len(records))
	s.publishRefresh(SourceFresh, len(records))
	return FetchResult{Success: true, Source: SourceFresh, PlayersCount: len(records)}
}

// parseFailure reports a parse/format failure. Unlike a transport failure
// this is never rebranded as a cached fallback: the page was reachable but
// unusable, which the caller should know about. The existing cache is left
// untouched and keeps serving lookups.
func (s *Store) parseFailure(cause error) FetchResult {
	telemetry.Errorf("trends: %v", cause)
	if s.bus != nil {
		s.bus.Publish(events.New(events.EventMarketRefreshFailed, events.RefreshFailedEvent{Error: cause.Error()}))
	}
	return FetchResult{Success: false, Source: SourceFailed, Err: cause}
}

// fallbackOrFail degrades to the existing cache when there is one.
func (s *Store) fallbackOrFail(cause error) FetchResult {
	s.mu.RLock()
	size := len(s.cache)
	s.mu.RUnlock()

	if size > 0 {
		telemetry.Metrics.CacheFallbacks.Inc()
		telemetry.Warnf("trends: %v, serving %d cached records", cause, size)
		s.publishRefresh(SourceCachedFallback, size)
		return FetchResult{Success: true, Source: SourceCachedFallback, PlayersCount: size, Err: cause}
	}

	telemetry.Errorf("trends: %v, no cache to fall back on", cause)
	if s.bus != nil {
		s.bus.Publish(events.New(events.EventMarketRefreshFailed, events.RefreshFailedEvent{Error: cause.Error()}))
	}
	return FetchResult{Success: false, Source: SourceFailed, Err: cause}
}

func (s *Store) replaceCache(records map[string]Record, scrapedAt time.Time) {
	s.mu.Lock()
	s.cache = records
	s.lastScrape = scrapedAt
	s.mu.Unlock()
	telemetry.Metrics.CachedTrendRecords.Set(int64(len(records)))
}

func (s *Store) publishRefresh(source string, count int) {
	if s.bus == nil {
		return
	}
	stats := s.MarketStats()
	evtType := events.EventMarketRefresh
	if source == SourceSnapshot {
		evtType = events.EventSnapshotLoaded
	}
	s.bus.Publish(events.New(evtType, events.MarketRefreshEvent{
		Source:        source,
		Players:       count,
		Rising:        stats.RisingPlayers,
		Falling:       stats.FallingPlayers,
		Stable:        stats.StablePlayers,
		AverageChange: stats.AverageChange,
	}))
}

// IsCacheStale reports whether the last scrape is older than the staleness
// window. An empty store is always stale.
func (s *Store) IsCacheStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastScrape.IsZero() {
		return true
	}
	return s.now().Sub(s.lastScrape) > s.ttl
}

// Size returns the number of cached trend records.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// LastScrape returns the timestamp of the cached dataset (zero when empty).
func (s *Store) LastScrape() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScrape
}

// snapshotRecords copies the current record set for iteration outside the lock.
func (s *Store) snapshotRecords() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.cache))
	for _, r := range s.cache {
		out = append(out, r)
	}
	return out
}
