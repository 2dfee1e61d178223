package trends

import (
	"strings"

	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// PlayerTrend answers "what is this player's market trend" for an arbitrary
// identifier, tolerant of the spelling drift between the roster API and the
// scraped page. Position (id or word) and team are optional hints. Returns
// nil when the cache is empty or nothing matches; a miss is an expected
// outcome, not an error.
//
// This is a multi-tier pass over the key-indexed cache, not the roster
// funnel: candidates bucket into exact-with-team, exact, partial and
// surname tiers, and the first non-empty tier wins. Within a tier the
// longest original name wins, which prefers full names over shortened
// duplicates of the same player.
func (s *Store) PlayerTrend(name, position, team string) *Record {
	if name == "" || s.Size() == 0 {
		return nil
	}
	telemetry.Metrics.TrendLookups.Inc()

	normName := names.NormalizeName(names.ApplyAlias(name))
	normPos := names.NormalizePosition(position)
	normTeam := names.NormalizeTeam(team)
	surname := names.ExtractMainSurname(normName)

	var exactWithTeam, exactNoTeam, partial, surnameTier []Record

	for _, r := range s.snapshotRecords() {
		if normPos != "" && r.Posicion != normPos {
			continue
		}

		switch {
		case r.Nombre == normName && normTeam != "" && teamOverlaps(r.Equipo, normTeam):
			exactWithTeam = append(exactWithTeam, r)
		case r.Nombre == normName:
			exactNoTeam = append(exactNoTeam, r)
		case strings.Contains(r.Nombre, normName) || strings.Contains(normName, r.Nombre):
			partial = append(partial, r)
		case len(surname) > 2 && names.ExtractMainSurname(r.Nombre) == surname:
			surnameTier = append(surnameTier, r)
		}
	}

	for _, tier := range [][]Record{exactWithTeam, exactNoTeam, partial, surnameTier} {
		if len(tier) > 0 {
			best := pickLongestName(tier)
			return &best
		}
	}

	telemetry.Metrics.TrendLookupMisses.Inc()
	return nil
}

func teamOverlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func pickLongestName(tier []Record) Record {
	best := tier[0]
	for _, r := range tier[1:] {
		if len(r.OriginalName) > len(best.OriginalName) {
			best = r
		}
	}
	return best
}
