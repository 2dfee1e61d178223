package match

import (
	"regexp"
	"strings"

	"github.com/rubenaguilar/fantasy-trends/internal/core/names"
	"github.com/rubenaguilar/fantasy-trends/internal/core/roster"
)

// candidate is the ephemeral scoring record for one roster player during a
// single search. Never persisted.
type candidate struct {
	player           *roster.Player
	score            float64
	exactNickname    bool
	exactName        bool
	nicknameIncludes bool
	nameIncludes     bool
	fullContained    bool
	tokensMatched    int
	tokensTotal      int
	surnameMatch     bool
}

// searchInPlayerSet runs the scored search over one candidate pool and
// returns the winner only when its derived quality clears minQuality.
// searchName must already be normalized.
func searchInPlayerSet(searchName string, pool []roster.Player, minQuality float64) *roster.Player {
	if searchName == "" || len(pool) == 0 {
		return nil
	}

	tokens := strings.Fields(searchName)
	var abbrevPat *regexp.Regexp
	if len(tokens) >= 2 {
		abbrevPat = abbreviationPattern(tokens)
	}

	var candidates []candidate
	for i := range pool {
		p := &pool[i]
		nickNorm := names.NormalizeName(p.Nickname)
		nameNorm := names.NormalizeName(p.Name)

		// Exact match on either field short-circuits everything,
		// including the quality threshold.
		if (nickNorm != "" && nickNorm == searchName) || (nameNorm != "" && nameNorm == searchName) {
			return p
		}

		// Abbreviated-name path: "a carreras" stored on one side,
		// "alvaro f carreras" on the other.
		if abbrevPat != nil && (matchesAbbrev(abbrevPat, nickNorm) || matchesAbbrev(abbrevPat, nameNorm)) {
			return p
		}
		if candidateAbbreviates(nickNorm, searchName) || candidateAbbreviates(nameNorm, searchName) {
			return p
		}

		c := scoreCandidate(p, searchName, tokens, nickNorm, nameNorm)
		if c.score > 0 {
			candidates = append(candidates, c)
		}
	}

	// Nothing scored at all: fall back to surname-only comparison.
	if len(candidates) == 0 {
		candidates = surnameFallback(searchName, pool)
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if better(c, best) {
			best = c
		}
	}

	if quality(best) < minQuality {
		return nil
	}
	return best.player
}

func scoreCandidate(p *roster.Player, searchName string, tokens []string, nickNorm, nameNorm string) candidate {
	combined := strings.TrimSpace(nickNorm + " " + nameNorm)

	c := candidate{player: p, tokensTotal: len(tokens)}
	for _, t := range tokens {
		if strings.Contains(combined, t) {
			c.score++
			c.tokensMatched++
		}
	}
	if strings.Contains(combined, searchName) || strings.Contains(searchName, combined) {
		c.fullContained = true
		c.score += 2
	}
	if nickNorm != "" && strings.Contains(nickNorm, searchName) {
		c.nicknameIncludes = true
		c.score += 1.5
	}
	if nameNorm != "" && strings.Contains(nameNorm, searchName) {
		c.nameIncludes = true
		c.score += 1.5
	}
	return c
}

// surnameFallback compares main surnames only. Short surnames (<= 2 runes)
// are skipped; they collide with particles and initials too easily.
func surnameFallback(searchName string, pool []roster.Player) []candidate {
	surname := names.ExtractMainSurname(searchName)
	if len(surname) <= 2 {
		return nil
	}

	var out []candidate
	for i := range pool {
		p := &pool[i]
		nickSur := names.ExtractMainSurname(names.NormalizeName(p.Nickname))
		nameSur := names.ExtractMainSurname(names.NormalizeName(p.Name))
		if nickSur == surname || nameSur == surname {
			out = append(out, candidate{player: p, score: 0.5, surnameMatch: true})
		}
	}
	return out
}

// better is the deterministic total order over candidates:
// exact nickname > exact name > full containment > all tokens matched >
// nickname containment > name containment > raw score.
func better(a, b candidate) bool {
	if a.exactNickname != b.exactNickname {
		return a.exactNickname
	}
	if a.exactName != b.exactName {
		return a.exactName
	}
	if a.fullContained != b.fullContained {
		return a.fullContained
	}
	aAll := a.tokensTotal > 0 && a.tokensMatched == a.tokensTotal
	bAll := b.tokensTotal > 0 && b.tokensMatched == b.tokensTotal
	if aAll != bAll {
		return aAll
	}
	if a.nicknameIncludes != b.nicknameIncludes {
		return a.nicknameIncludes
	}
	if a.nameIncludes != b.nameIncludes {
		return a.nameIncludes
	}
	return a.score > b.score
}

// quality maps the winning candidate's evidence onto a 0-1 confidence
// scale, checked against the stage threshold.
func quality(c candidate) float64 {
	switch {
	case c.exactNickname || c.exactName:
		return 1.0
	case c.fullContained:
		return 0.9
	case c.tokensTotal > 0 && c.tokensMatched == c.tokensTotal:
		return 0.8
	case c.nicknameIncludes || c.nameIncludes || c.surnameMatch:
		return 0.6
	}
	if c.tokensTotal == 0 {
		return 0.05
	}
	ratio := float64(c.tokensMatched) / float64(c.tokensTotal)
	switch {
	case ratio >= 0.5:
		return 0.4
	case ratio > 0:
		return 0.6 * ratio // scales to < 0.3
	default:
		return 0.05
	}
}

// abbreviationPattern builds "^<first initial>[^a-z]*\s*<last token>$" from
// search tokens: the shape of an initial-plus-surname name.
func abbreviationPattern(tokens []string) *regexp.Regexp {
	first := tokens[0]
	last := tokens[len(tokens)-1]
	return regexp.MustCompile(`^` + regexp.QuoteMeta(first[:1]) + `[^a-z]*\s*` + regexp.QuoteMeta(last) + `$`)
}

func matchesAbbrev(pat *regexp.Regexp, name string) bool {
	return name != "" && pat.MatchString(name)
}

// candidateAbbreviates handles the reverse direction: the search side is
// abbreviated ("a carreras") while the candidate carries the full name
// ("alvaro f carreras").
func candidateAbbreviates(candName, searchName string) bool {
	if candName == "" {
		return false
	}
	ct := strings.Fields(candName)
	if len(ct) < 2 {
		return false
	}
	pat := abbreviationPattern(ct)
	return pat.MatchString(searchName)
}
