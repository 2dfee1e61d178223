package trends

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

// playerMarker is the per-player split point in the analytics page markup.
// The whole parser is contractually bound to that page's current DOM; when
// the markup drifts, the fixture tests catch it instead of the parser
// silently degrading to zero records.
const playerMarker = `class="elemento_jugador"`

var (
	reNombre     = regexp.MustCompile(`data-nombre="([^"]*)"`)
	rePosicion   = regexp.MustCompile(`data-posicion="([^"]*)"`)
	reValor      = regexp.MustCompile(`data-valor="([^"]*)"`)
	reDiferencia = regexp.MustCompile(`data-diferencia1="([^"]*)"`)
	rePorcentaje = regexp.MustCompile(`data-diferencia1-porcentual="([^"]*)"`)
	reEquipoID   = regexp.MustCompile(`data-equipo="([^"]*)"`)

	reTeamSelect = regexp.MustCompile(`(?s)<select[^>]*(?:id|name)="equipo[^"]*"[^>]*>(.*?)</select>`)
	reTeamOption = regexp.MustCompile(`<option[^>]*value="(\d+)"[^>]*>([^<]+)</option>`)
)

// ParseMarketHTML extracts trend records from one snapshot of the market
// analytics page. Fragments missing a required field or carrying unparsable
// numbers are skipped, never fatal: the page contains boilerplate that also
// matches the split marker.
func ParseMarketHTML(html string) ([]Record, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("parse market page: empty document")
	}

	teamByID := parseTeamOptions(html)
	now := time.Now()

	fragments := strings.Split(html, playerMarker)
	records := make([]Record, 0, len(fragments))
	for _, frag := range fragments[1:] {
		rec, ok := parseFragment(frag, teamByID, now)
		if !ok {
			telemetry.Metrics.FragmentsSkipped.Inc()
			continue
		}
		telemetry.Metrics.FragmentsParsed.Inc()
		records = append(records, rec)
	}

	telemetry.Debugf("trends: parsed %d records from %d fragments", len(records), len(fragments)-1)
	return records, nil
}

func parseFragment(frag string, teamByID map[string]string, now time.Time) (Record, bool) {
	name := extract(reNombre, frag)
	pos := extract(rePosicion, frag)
	rawValor := extract(reValor, frag)
	rawDif := extract(reDiferencia, frag)
	rawPct := extract(rePorcentaje, frag)

	if name == "" || pos == "" || rawValor == "" || rawDif == "" || rawPct == "" {
		return Record{}, false
	}

	valor, err := parseSpanishNumber(rawValor)
	if err != nil {
		return Record{}, false
	}
	dif, err := parseSpanishNumber(rawDif)
	if err != nil {
		return Record{}, false
	}
	pct, err := parseSpanishNumber(rawPct)
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		Nombre:       names.NormalizeName(name),
		OriginalName: strings.TrimSpace(name),
		Posicion:     names.NormalizePosition(pos),
		Valor:        int64(valor),
		Diferencia1:  dif,
		Porcentaje:   pct,
		LastUpdated:  now,
	}

	if id := extract(reEquipoID, frag); id != "" {
		rec.EquipoID = id
		if teamName, ok := teamByID[id]; ok {
			rec.OriginalTeam = teamName
			rec.Equipo = names.NormalizeTeam(teamName)
		}
	}

	rec.decorate()
	return rec, true
}

// parseTeamOptions reads the page's team filter dropdown into an id→name
// map. Falls back to the hardcoded club table when the dropdown is missing.
func parseTeamOptions(html string) map[string]string {
	m := reTeamSelect.FindStringSubmatch(html)
	if m == nil {
		return names.FallbackClubIDs
	}

	out := make(map[string]string)
	for _, opt := range reTeamOption.FindAllStringSubmatch(m[1], -1) {
		name := strings.TrimSpace(opt[2])
		if opt[1] != "" && name != "" {
			out[opt[1]] = name
		}
	}
	if len(out) == 0 {
		return names.FallbackClubIDs
	}
	return out
}

func extract(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseSpanishNumber handles the site's number formats: "12.345.678",
// "-1.200.000", "-4,85", plain "23500000", with optional € and spaces.
func parseSpanishNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		// dots are thousands separators, comma is the decimal point
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	} else if i := strings.Index(s, "."); i >= 0 && len(s)-i-1 == 3 {
		// single dot followed by exactly three digits: thousands, not decimal
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}
