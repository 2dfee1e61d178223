package trends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	html  string
	err   error
	calls int
}

func (f *fakeFetcher) FetchMarketHTML(ctx context.Context) (string, error) {
	f.calls++
	return f.html, f.err
}

type fakeSnapshot struct {
	records   map[string]Record
	scrapedAt time.Time
	loadErr   error

	saved   map[string]Record
	savedAt time.Time
	saveErr error
}

func (f *fakeSnapshot) Load() (map[string]Record, time.Time, error) {
	if f.loadErr != nil {
		return nil, time.Time{}, f.loadErr
	}
	if f.records == nil {
		return map[string]Record{}, time.Time{}, nil
	}
	return f.records, f.scrapedAt, nil
}

func (f *fakeSnapshot) Save(records map[string]Record, scrapedAt time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = records
	f.savedAt = scrapedAt
	return nil
}

func marketPage(entries ...string) string {
	page := `<select name="equipo"><option value="16">Real Madrid</option><option value="4">FC Barcelona</option></select>`
	for _, e := range entries {
		page += e
	}
	return page
}

func playerDiv(name, pos, valor, dif, pct, teamID string) string {
	return `<div class="elemento_jugador" data-nombre="` + name +
		`" data-posicion="` + pos +
		`" data-valor="` + valor +
		`" data-diferencia1="` + dif +
		`" data-diferencia1-porcentual="` + pct +
		`" data-equipo="` + teamID + `"></div>`
}

func trendRecords(names ...string) map[string]Record {
	out := make(map[string]Record, len(names))
	for _, n := range names {
		r := Record{Nombre: n, OriginalName: n, Posicion: "delantero", Equipo: "madrid", Valor: 1000000}
		out[r.Key()] = r
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInitializeFreshSnapshotSkipsNetwork(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{html: marketPage()}
	snap := &fakeSnapshot{
		records:   trendRecords("vinicius jr", "mbappe"),
		scrapedAt: now.Add(-2 * time.Hour),
	}

	s := NewStore(fetcher, snap, nil, 24*time.Hour)
	s.now = fixedClock(now)

	res := s.Initialize(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, SourceSnapshot, res.Source)
	assert.Equal(t, 2, res.PlayersCount)
	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, 2, s.Size())
	assert.False(t, s.IsCacheStale())
}

func TestInitializeStaleSnapshotRefetches(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{html: marketPage(
		playerDiv("Pedri", "Mediocampista", "9.800.000", "350.000", "3,7", "4"),
	)}
	snap := &fakeSnapshot{
		records:   trendRecords("vinicius jr"),
		scrapedAt: now.Add(-30 * time.Hour),
	}

	s := NewStore(fetcher, snap, nil, 24*time.Hour)
	s.now = fixedClock(now)

	res := s.Initialize(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, SourceFresh, res.Source)
	assert.Equal(t, 1, res.PlayersCount)
	assert.Equal(t, 1, fetcher.calls)

	// fresh dataset replaced the stale one and was persisted
	assert.Equal(t, 1, s.Size())
	require.NotNil(t, snap.saved)
	assert.Contains(t, snap.saved, "pedri|mediocampista|barcelona")
	assert.Equal(t, now, snap.savedAt)
}

func TestRefreshFetchErrorFallsBackToCache(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{html: marketPage(
		playerDiv("Pedri", "Mediocampista", "9.800.000", "350.000", "3,7", "4"),
	)}
	s := NewStore(fetcher, nil, nil, 24*time.Hour)
	s.now = fixedClock(now)

	res := s.Refresh(context.Background())
	require.True(t, res.Success)
	require.Equal(t, 1, s.Size())

	fetcher.err = errors.New("connection refused")
	res = s.Refresh(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, SourceCachedFallback, res.Source)
	assert.Equal(t, 1, res.PlayersCount)
	assert.Error(t, res.Err)
	assert.Equal(t, 1, s.Size(), "fallback must not touch the cache")
}

func TestRefreshFetchErrorWithoutCacheFails(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("timeout")}
	s := NewStore(fetcher, nil, nil, 24*time.Hour)

	res := s.Refresh(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, SourceFailed, res.Source)
	assert.Error(t, res.Err)
	assert.Equal(t, 0, s.Size())
}

func TestRefreshZeroRecordsIsParseFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{html: marketPage(
		playerDiv("Pedri", "Mediocampista", "9.800.000", "350.000", "3,7", "4"),
	)}
	s := NewStore(fetcher, nil, nil, 24*time.Hour)
	s.now = fixedClock(now)

	res := s.Refresh(context.Background())
	require.True(t, res.Success)
	lastScrape := s.LastScrape()

	// page still reachable but markup drifted: no player fragments survive
	fetcher.html = "<html><body>redesigned page</body></html>"
	res = s.Refresh(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, SourceFailed, res.Source)
	assert.Error(t, res.Err)

	// existing cache keeps serving, untouched
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, lastScrape, s.LastScrape())
}

func TestInitializeNoFetcherNoSnapshotFails(t *testing.T) {
	s := NewStore(nil, nil, nil, 0)
	res := s.Initialize(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, SourceFailed, res.Source)
}

func TestInitializeSnapshotLoadErrorFallsThroughToFetch(t *testing.T) {
	fetcher := &fakeFetcher{html: marketPage(
		playerDiv("Pedri", "Mediocampista", "9.800.000", "350.000", "3,7", "4"),
	)}
	snap := &fakeSnapshot{loadErr: errors.New("disk corrupt")}
	s := NewStore(fetcher, snap, nil, 24*time.Hour)

	res := s.Initialize(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, SourceFresh, res.Source)
	assert.Equal(t, 1, fetcher.calls)
}

func TestIsCacheStale(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewStore(nil, nil, nil, time.Hour)
	s.now = fixedClock(now)

	assert.True(t, s.IsCacheStale(), "empty store is stale")

	s.replaceCache(trendRecords("pedri"), now.Add(-30*time.Minute))
	assert.False(t, s.IsCacheStale())

	s.replaceCache(trendRecords("pedri"), now.Add(-2*time.Hour))
	assert.True(t, s.IsCacheStale())
}

func TestRefreshKeyCollisionLastWriteWins(t *testing.T) {
	fetcher := &fakeFetcher{html: marketPage(
		playerDiv("Pedri", "Mediocampista", "9.000.000", "100.000", "1,0", "4"),
		playerDiv("Pedri", "Mediocampista", "9.800.000", "350.000", "3,7", "4"),
	)}
	s := NewStore(fetcher, nil, nil, 24*time.Hour)

	res := s.Refresh(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 1, res.PlayersCount)

	rec := s.PlayerTrend("Pedri", "Mediocampista", "Barcelona")
	require.NotNil(t, rec)
	assert.Equal(t, int64(9800000), rec.Valor)
}
