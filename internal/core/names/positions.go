package names

import "strconv"

// Canonical position labels. The roster API uses numeric ids 1-4, the
// analytics site uses Spanish words; both normalize to these.
const (
	PositionPortero       = "portero"
	PositionDefensa       = "defensa"
	PositionMediocampista = "mediocampista"
	PositionDelantero     = "delantero"
)

var positionWords = map[string]string{
	"portero":       PositionPortero,
	"goalkeeper":    PositionPortero,
	"keeper":        PositionPortero,
	"gk":            PositionPortero,
	"pt":            PositionPortero,
	"por":           PositionPortero,
	"defensa":       PositionDefensa,
	"defender":      PositionDefensa,
	"defence":       PositionDefensa,
	"defense":       PositionDefensa,
	"df":            PositionDefensa,
	"def":           PositionDefensa,
	"mediocampista": PositionMediocampista,
	"centrocampista": PositionMediocampista,
	"mediocentro":   PositionMediocampista,
	"midfielder":    PositionMediocampista,
	"medio":         PositionMediocampista,
	"mc":            PositionMediocampista,
	"med":           PositionMediocampista,
	"mid":           PositionMediocampista,
	"delantero":     PositionDelantero,
	"forward":       PositionDelantero,
	"striker":       PositionDelantero,
	"attacker":      PositionDelantero,
	"dl":            PositionDelantero,
	"del":           PositionDelantero,
	"fw":            PositionDelantero,
}

// PositionFromID maps the roster API's numeric position id to its label.
// Unknown ids return "".
func PositionFromID(id int) string {
	switch id {
	case 1:
		return PositionPortero
	case 2:
		return PositionDefensa
	case 3:
		return PositionMediocampista
	case 4:
		return PositionDelantero
	default:
		return ""
	}
}

// NormalizePosition accepts a numeric id ("1".."4") or a Spanish/English
// position word and canonicalizes it. Anything unrecognized falls through
// to plain name normalization so callers can still compare it.
func NormalizePosition(s string) string {
	if s == "" {
		return ""
	}
	if id, err := strconv.Atoi(s); err == nil {
		return PositionFromID(id)
	}
	n := NormalizeName(s)
	if canonical, ok := positionWords[n]; ok {
		return canonical
	}
	return n
}
