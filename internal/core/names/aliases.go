package names

// PlayerAliases maps scraped display names (normalized) to the name the
// roster API knows the player by. This is the escape hatch for cases the
// matcher cannot resolve on its own: nicknames, brothers sharing a surname,
// names the analytics site abbreviates beyond recognition. Keep every entry
// here, never inside matching logic.
var PlayerAliases = map[string]string{
	"vinicius jr":     "vini jr",
	"vinicius junior": "vini jr",
	"rodrygo goes":    "rodrygo",
	"eder militao":    "militao",
	"carvajal":        "dani carvajal",
	"raphinha dias":   "raphinha",
	"lamine":          "lamine yamal",
	"williams jr":     "nico williams",
	"j mastantuono":   "mastantuono",
	"kubo":            "take kubo",
	"oyarzabal":       "mikel oyarzabal",
	"isco alarcon":    "isco",
	"griezmann":       "antoine griezmann",
}

// FallbackClubIDs maps the analytics site's numeric team ids to club names,
// used when the page's team dropdown is missing or unparsable.
var FallbackClubIDs = map[string]string{
	"1":  "Deportivo Alavés",
	"2":  "Athletic Club",
	"3":  "Atlético de Madrid",
	"4":  "FC Barcelona",
	"5":  "Real Betis",
	"6":  "RC Celta",
	"7":  "Elche CF",
	"8":  "RCD Espanyol",
	"9":  "Getafe CF",
	"10": "Girona FC",
	"11": "Levante UD",
	"12": "RCD Mallorca",
	"13": "CA Osasuna",
	"14": "Real Oviedo",
	"15": "Rayo Vallecano",
	"16": "Real Madrid",
	"17": "Real Sociedad",
	"18": "Sevilla FC",
	"19": "Valencia CF",
	"20": "Villarreal CF",
}

// ApplyAlias rewrites a scraped player name through the alias table.
// Returns the input unchanged when no entry matches.
func ApplyAlias(name string) string {
	if alias, ok := PlayerAliases[NormalizeName(name)]; ok {
		return alias
	}
	return name
}

// Extend merges operator-supplied overrides into the built-in tables.
// Meant to be called once at startup, before any lookups run.
func Extend(players, teams, clubs map[string]string) {
	for k, v := range players {
		PlayerAliases[NormalizeName(k)] = NormalizeName(v)
	}
	for k, v := range teams {
		TeamAliases[NormalizeName(k)] = v
	}
	for k, v := range clubs {
		FallbackClubIDs[k] = v
	}
}
