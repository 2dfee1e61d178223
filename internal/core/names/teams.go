package names

import "strings"

// teamPrefixes and teamSuffixes are boilerplate tokens the two data sources
// disagree on ("Real Betis" vs "Betis", "Girona FC" vs "Girona").
var teamPrefixes = []string{"real ", "club ", "cf ", "cd ", "rcd ", "ud ", "rc "}
var teamSuffixes = []string{" cf", " fc", " cd", " club de futbol", " balompie"}

// TeamAliases maps alternate club spellings to the canonical short name.
// Covers the known La Liga variants only; the override file can extend it.
var TeamAliases = map[string]string{
	"athletic club":      "athletic",
	"athletic bilbao":    "athletic",
	"ath bilbao":         "athletic",
	"atletico madrid":    "atletico",
	"atletico de madrid": "atletico",
	"atl madrid":         "atletico",
	"rayo vallecano":     "rayo",
	"celta de vigo":      "celta",
	"celta vigo":         "celta",
	"real sociedad":      "sociedad",
	"r sociedad":         "sociedad",
	"deportivo alaves":   "alaves",
	"real betis":         "betis",
	"betis balompie":     "betis",
	"real madrid":        "madrid",
	"real oviedo":        "oviedo",
	"real valladolid":    "valladolid",
	"fc barcelona":       "barcelona",
	"barca":              "barcelona",
	"sevilla fc":         "sevilla",
	"valencia cf":        "valencia",
	"villarreal cf":      "villarreal",
	"getafe cf":          "getafe",
	"girona fc":          "girona",
	"ca osasuna":         "osasuna",
	"rcd espanyol":       "espanyol",
	"espanyol de barcelona": "espanyol",
	"rcd mallorca":       "mallorca",
	"ud las palmas":      "las palmas",
	"elche cf":           "elche",
	"levante ud":         "levante",
}

// NormalizeTeam canonicalizes a club name the same way NormalizeName treats
// player names, then resolves the known La Liga spelling variants. It is not
// a general club-name canonicalizer.
func NormalizeTeam(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	s = collapseWhitespace(s)

	if canonical, ok := TeamAliases[s]; ok {
		return canonical
	}

	for _, p := range teamPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	for _, suf := range teamSuffixes {
		s = strings.TrimSuffix(s, suf)
	}
	s = collapseWhitespace(s)

	if canonical, ok := TeamAliases[s]; ok {
		return canonical
	}
	return s
}
