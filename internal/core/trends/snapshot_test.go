package trends

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.db")
	snap, err := OpenSnapshot(path)
	require.NoError(t, err)
	defer snap.Close()

	scrapedAt := time.Date(2026, 3, 10, 12, 30, 45, 0, time.UTC)
	records := map[string]Record{
		"pedri|mediocampista|barcelona": {
			Nombre:       "pedri",
			OriginalName: "Pedri",
			Posicion:     "mediocampista",
			Equipo:       "barcelona",
			OriginalTeam: "FC Barcelona",
			EquipoID:     "4",
			Valor:        9800000,
			Diferencia1:  350000,
			Porcentaje:   3.7,
			Tendencia:    GlyphRising,
			CambioTexto:  "+350,000 €",
			Color:        ColorRising,
			IsPositive:   true,
			LastUpdated:  scrapedAt,
		},
		"vinicius jr|delantero|madrid": {
			Nombre:      "vinicius jr",
			Posicion:    "delantero",
			Equipo:      "madrid",
			Valor:       23500000,
			Diferencia1: -1200000,
			IsNegative:  true,
			LastUpdated: scrapedAt,
		},
	}

	require.NoError(t, snap.Save(records, scrapedAt))

	loaded, loadedAt, err := snap.Load()
	require.NoError(t, err)
	assert.True(t, loadedAt.Equal(scrapedAt), "scraped_at survives the round trip")
	require.Len(t, loaded, 2)

	pedri := loaded["pedri|mediocampista|barcelona"]
	assert.Equal(t, "Pedri", pedri.OriginalName)
	assert.Equal(t, int64(9800000), pedri.Valor)
	assert.Equal(t, 3.7, pedri.Porcentaje)
	assert.Equal(t, GlyphRising, pedri.Tendencia)
	assert.True(t, pedri.IsPositive)
}

func TestSnapshotSaveReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.db")
	snap, err := OpenSnapshot(path)
	require.NoError(t, err)
	defer snap.Close()

	first := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	require.NoError(t, snap.Save(trendRecords("vinicius jr", "mbappe", "rodrygo"), first))

	second := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, snap.Save(trendRecords("pedri"), second))

	loaded, loadedAt, err := snap.Load()
	require.NoError(t, err)
	assert.True(t, loadedAt.Equal(second))
	require.Len(t, loaded, 1)
	assert.Contains(t, loaded, "pedri|delantero|madrid")
}

func TestSnapshotLoadEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.db")
	snap, err := OpenSnapshot(path)
	require.NoError(t, err)
	defer snap.Close()

	loaded, loadedAt, err := snap.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.True(t, loadedAt.IsZero())
}

func TestSnapshotPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.db")
	snap, err := OpenSnapshot(path)
	require.NoError(t, err)

	scrapedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, snap.Save(trendRecords("pedri"), scrapedAt))
	require.NoError(t, snap.Close())

	reopened, err := OpenSnapshot(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, loadedAt, err := reopened.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.True(t, loadedAt.Equal(scrapedAt))
}
