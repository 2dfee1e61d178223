package trends

import (
	"math"
	"sort"

	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
)

// Trending filters.
const (
	FilterAll     = "all"
	FilterRising  = "rising"
	FilterFalling = "falling"
	FilterStable  = "stable"
)

// Trending sort keys.
const (
	SortValueChange      = "value_change"
	SortPercentageChange = "percentage_change"
	SortCurrentValue     = "current_value"
)

// TrendingOptions selects and orders a slice of the cached records.
// Zero values mean: no filter, sort by absolute value change, limit 10.
type TrendingOptions struct {
	Filter   string
	SortBy   string
	Limit    int
	Position string
}

// TrendingPlayers returns a filtered, sorted, capped view of the cache.
func (s *Store) TrendingPlayers(opts TrendingOptions) []Record {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	normPos := names.NormalizePosition(opts.Position)

	out := make([]Record, 0, opts.Limit)
	for _, r := range s.snapshotRecords() {
		if normPos != "" && r.Posicion != normPos {
			continue
		}
		switch opts.Filter {
		case FilterRising:
			if r.Diferencia1 <= 0 {
				continue
			}
		case FilterFalling:
			if r.Diferencia1 >= 0 {
				continue
			}
		case FilterStable:
			if r.Diferencia1 != 0 {
				continue
			}
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch opts.SortBy {
		case SortPercentageChange:
			return math.Abs(out[i].Porcentaje) > math.Abs(out[j].Porcentaje)
		case SortCurrentValue:
			return out[i].Valor > out[j].Valor
		default:
			return math.Abs(out[i].Diferencia1) > math.Abs(out[j].Diferencia1)
		}
	})

	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// MarketStats are the aggregate counts the dashboard header renders.
type MarketStats struct {
	TotalPlayers   int     `json:"totalPlayers"`
	RisingPlayers  int     `json:"risingPlayers"`
	FallingPlayers int     `json:"fallingPlayers"`
	StablePlayers  int     `json:"stablePlayers"`
	AverageChange  float64 `json:"averageChange"`
}

// MarketStats aggregates the cached records. An empty cache yields the
// zero struct, never an error.
func (s *Store) MarketStats() MarketStats {
	var stats MarketStats
	var sum float64
	for _, r := range s.snapshotRecords() {
		stats.TotalPlayers++
		sum += r.Diferencia1
		switch {
		case r.Diferencia1 > 0:
			stats.RisingPlayers++
		case r.Diferencia1 < 0:
			stats.FallingPlayers++
		default:
			stats.StablePlayers++
		}
	}
	if stats.TotalPlayers > 0 {
		stats.AverageChange = sum / float64(stats.TotalPlayers)
	}
	return stats
}
