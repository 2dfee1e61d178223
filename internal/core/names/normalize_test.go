package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Óscar Mingueza", "oscar mingueza"},
		{"oscar mingueza", "oscar mingueza"},
		{"Á. Carreras", "a carreras"},
		{"Vinicius Jr.", "vinicius jr"},
		{"  N'Golo   Kanté ", "ngolo kante"},
		{"Müller-Þór", "mulleror"}, // unmapped letters are dropped, not transliterated
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, in := range []string{"Óscar Mingueza", "J. Mastantuono", "Iñaki Williams", "Saúl Ñíguez"} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeNameAccentInsensitive(t *testing.T) {
	assert.Equal(t, NormalizeName("oscar mingueza"), NormalizeName("Óscar Mingueza"))
	assert.Equal(t, NormalizeName("alvaro f carreras"), NormalizeName("Álvaro F. Carreras"))
}

func TestExtractMainSurname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"j mastantuono", "mastantuono"},
		{"messi", "messi"},
		{"mikel oyarzabal", "oyarzabal"},
		{"antoine griezmann", "griezmann"},
		{"alvaro f carreras", "carreras"}, // 3+ tokens: last wins
		{"a garcia lopez", "garcia lopez"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractMainSurname(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Real Madrid", "madrid"},
		{"Athletic Club", "athletic"},
		{"Atlético de Madrid", "atletico"},
		{"Rayo Vallecano", "rayo"},
		{"Girona FC", "girona"},
		{"Sevilla FC", "sevilla"},
		{"RCD Espanyol", "espanyol"},
		{"Real Betis", "betis"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTeam(tt.in), "input %q", tt.in)
	}
}

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", PositionPortero},
		{"2", PositionDefensa},
		{"3", PositionMediocampista},
		{"4", PositionDelantero},
		{"Portero", PositionPortero},
		{"goalkeeper", PositionPortero},
		{"Centrocampista", PositionMediocampista},
		{"forward", PositionDelantero},
		{"DEF", PositionDefensa},
		{"libero", "libero"}, // unknown word falls through to name normalization
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePosition(tt.in), "input %q", tt.in)
	}
}

func TestPositionFromID(t *testing.T) {
	assert.Equal(t, PositionPortero, PositionFromID(1))
	assert.Equal(t, PositionDelantero, PositionFromID(4))
	assert.Equal(t, "", PositionFromID(0))
	assert.Equal(t, "", PositionFromID(9))
}

func TestApplyAlias(t *testing.T) {
	assert.Equal(t, "vini jr", ApplyAlias("Vinicius Jr."))
	assert.Equal(t, "mastantuono", ApplyAlias("J. Mastantuono"))
	// no entry: unchanged
	assert.Equal(t, "Pedri", ApplyAlias("Pedri"))
}

func TestExtend(t *testing.T) {
	Extend(
		map[string]string{"El Bicho": "cristiano"},
		map[string]string{"Los Leones": "athletic"},
		map[string]string{"99": "Test Club"},
	)
	assert.Equal(t, "cristiano", ApplyAlias("el bicho"))
	assert.Equal(t, "athletic", NormalizeTeam("los leones"))
	assert.Equal(t, "Test Club", FallbackClubIDs["99"])
}
