package match

import (
	"strings"
	"time"

	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
	"github.com/rubenaguilar/fantasy-trends/internal/core/roster"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// Funnel stage thresholds. Earlier, narrower stages get first claim on the
// result, so they demand higher confidence: a weak hit among the 6-8
// same-team-same-position players should fall through to the broader stages
// rather than win by default.
const (
	minQualityTeamAndPosition = 0.7
	minQualityTeamOnly        = 0.6
	minQualityPositionOnly    = 0.5
	minQualityFullRoster      = 0.5
)

// FindPlayer resolves a scraped player identifier to a roster entry, or nil
// when nothing qualifies. searchPosition is a position id or word (may be
// empty), searchTeam a club name as the scrape spells it (may be empty).
//
// Four progressively broader candidate pools are tried in order; the first
// stage whose best candidate clears its quality bar wins.
func FindPlayer(searchName, searchPosition string, players []roster.Player, searchTeam string) *roster.Player {
	if searchName == "" || len(players) == 0 {
		return nil
	}
	telemetry.Metrics.RosterLookups.Inc()
	start := time.Now()
	defer func() {
		telemetry.Metrics.RosterLookupLatency.Record(time.Since(start))
	}()

	normName := names.NormalizeName(names.ApplyAlias(searchName))
	normPos := names.NormalizePosition(searchPosition)
	normTeam := names.NormalizeTeam(searchTeam)

	if normTeam != "" {
		if normPos != "" {
			pool := filterPlayers(players, normTeam, normPos)
			if p := searchInPlayerSet(normName, pool, minQualityTeamAndPosition); p != nil {
				return p
			}
		}
		pool := filterPlayers(players, normTeam, "")
		if p := searchInPlayerSet(normName, pool, minQualityTeamOnly); p != nil {
			return p
		}
	}

	if normPos != "" {
		pool := filterPlayers(players, "", normPos)
		if p := searchInPlayerSet(normName, pool, minQualityPositionOnly); p != nil {
			return p
		}
	}

	if p := searchInPlayerSet(normName, players, minQualityFullRoster); p != nil {
		return p
	}

	telemetry.Metrics.RosterLookupMisses.Inc()
	return nil
}

// FindPlayerByPositionID is FindPlayer for callers that have the roster
// API's numeric position id at hand. Zero means no position filter.
func FindPlayerByPositionID(searchName string, positionID int, players []roster.Player, searchTeam string) *roster.Player {
	return FindPlayer(searchName, names.PositionFromID(positionID), players, searchTeam)
}

// filterPlayers narrows the roster pool. An empty team or position means
// that dimension is not filtered. Team matching is containment, not
// equality: "madrid" must still catch a roster team stored as
// "real madrid cf".
func filterPlayers(players []roster.Player, normTeam, normPos string) []roster.Player {
	out := make([]roster.Player, 0, 16)
	for _, p := range players {
		if normTeam != "" && !strings.Contains(names.NormalizeTeam(p.Team.Name), normTeam) {
			continue
		}
		if normPos != "" && names.PositionFromID(p.PositionID) != normPos {
			continue
		}
		out = append(out, p)
	}
	return out
}
