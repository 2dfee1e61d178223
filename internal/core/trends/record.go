package trends

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Trend direction glyphs and colors, consumed verbatim by the UI.
const (
	GlyphRising  = "📈"
	GlyphFalling = "📉"
	GlyphStable  = "➡️"

	ColorRising  = "#22c55e"
	ColorFalling = "#ef4444"
	ColorStable  = "#9ca3af"
)

// Record is one scraped market-trend entry. It has no stable id: identity
// is the normalized name|position|team tuple, which is exactly why matching
// against the roster is hard. JSON tags keep the snapshot wire format the
// desktop app already persists.
type Record struct {
	Nombre       string    `json:"nombre"`       // normalized name
	OriginalName string    `json:"originalName"` // as scraped
	Posicion     string    `json:"posicion"`     // portero|defensa|mediocampista|delantero
	Equipo       string    `json:"equipo"`       // normalized team
	OriginalTeam string    `json:"originalTeamName"`
	EquipoID     string    `json:"equipoId,omitempty"`
	Valor        int64     `json:"valor"`       // current market value, whole currency units
	Diferencia1  float64   `json:"diferencia1"` // signed 24h delta
	Porcentaje   float64   `json:"porcentaje"`  // signed 24h delta, percent
	Tendencia    string    `json:"tendencia"`
	CambioTexto  string    `json:"cambioTexto"`
	Color        string    `json:"color"`
	IsPositive   bool      `json:"isPositive"`
	IsNegative   bool      `json:"isNegative"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// Key is the composite cache key. Later parses with a colliding key
// overwrite earlier ones.
func (r Record) Key() string {
	return r.Nombre + "|" + r.Posicion + "|" + r.Equipo
}

// decorate fills the presentation fields derived from Diferencia1.
func (r *Record) decorate() {
	switch {
	case r.Diferencia1 > 0:
		r.Tendencia, r.Color = GlyphRising, ColorRising
		r.IsPositive = true
	case r.Diferencia1 < 0:
		r.Tendencia, r.Color = GlyphFalling, ColorFalling
		r.IsNegative = true
	default:
		r.Tendencia, r.Color = GlyphStable, ColorStable
	}
	r.CambioTexto = FormatChange(r.Diferencia1)
}

// FormatChange renders a signed delta as the UI displays it: "+1,250,000 €".
func FormatChange(delta float64) string {
	n := int64(delta)
	if n > 0 {
		return fmt.Sprintf("+%s €", humanize.Comma(n))
	}
	if n < 0 {
		return fmt.Sprintf("-%s €", humanize.Comma(-n))
	}
	return "0 €"
}
